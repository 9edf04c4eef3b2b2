package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "indent",
			Description: "spaces per indentation level",
			Type:        cli.NamedFuncOpt(cfg.indentOpt, "(n)"),
		},
		&cli.Opt{
			Name:        "set",
			Description: "json merge patch applied to the config",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(patch)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "haarprep").
		WithSynopsis("haarprep [opts] command [opts]").
		WithDescription("haarprep normalizes Haar cascade exports into a combined cascade.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return haarprepMain(cfg, cc, args)
		}).
		WithSubs(
			UnwrapCommand(cfg),
			CoerceCommand(cfg),
			RemapCommand(cfg),
			AssembleCommand(cfg),
			RunCommand(cfg),
			DiffCommand(cfg),
			InfoCommand(cfg))
}

func UnwrapCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &UnwrapConfig{MainConfig: mainCfg, Out: "-"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Unwrap, "unwrap").
		WithAliases("u").
		WithSynopsis("unwrap [-o out] [file]").
		WithDescription("replace wrapper objects with the arrays they hold").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return unwrap(cfg, cc, args)
		})
}

func CoerceCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CoerceConfig{MainConfig: mainCfg, Out: "-"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Coerce, "coerce").
		WithAliases("c").
		WithSynopsis("coerce [-strict] [-o out] [file]").
		WithDescription("turn numeric strings into numbers").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return coerce(cfg, cc, args)
		})
}

func RemapCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RemapConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Remap, "remap").
		WithAliases("r").
		WithSynopsis("remap [-stages out] [-features out] [file]").
		WithDescription("split a normalized export into stages and features").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return remap(cfg, cc, args)
		})
}

func AssembleCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AssembleConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Assemble, "assemble").
		WithAliases("a").
		WithSynopsis("assemble [-stages in] [-features in] [-o out]").
		WithDescription("join stages and features into the combined cascade").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return assemble(cfg, cc, args)
		})
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Run, "run").
		WithSynopsis("run [-strict] [-o out] [-keep dir] file").
		WithDescription("run all stages on a raw export").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-patch | -lines] a b").
		WithDescription("compare two artifacts, exiting 1 if they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithAliases("i").
		WithSynopsis("info [-where expr] file").
		WithDescription("summarize a combined cascade").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return info(cfg, cc, args)
		})
}
