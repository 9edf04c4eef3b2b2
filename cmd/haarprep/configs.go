package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/format"
	"github.com/signadot/haarprep/pipeline"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	ConfigFile string `cli:"name=config desc='yaml pipeline config file'"`

	Indent  *int
	Patches [][]byte

	Main *cli.Command
}

func (cfg *MainConfig) indentOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.Atoi(a)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid indent %q", cli.ErrUsage, a)
	}
	cfg.Indent = &n
	return n, nil
}

func (cfg *MainConfig) setOpt(_ *cli.Context, a string) (any, error) {
	cfg.Patches = append(cfg.Patches, []byte(a))
	return a, nil
}

// config builds the pipeline config from the config file, then -set
// patches in order, then the output flags.
func (cfg *MainConfig) config() (pipeline.Config, error) {
	res := pipeline.DefaultConfig()
	if cfg.ConfigFile != "" {
		c, err := pipeline.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return res, err
		}
		res = c
	}
	for _, p := range cfg.Patches {
		c, err := res.Patch(p)
		if err != nil {
			return res, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		res = c
	}
	switch {
	case cfg.J:
		res.Format = format.JSONFormat
	case cfg.Y:
		res.Format = format.YAMLFormat
	}
	if cfg.Indent != nil {
		res.Indent = *cfg.Indent
	}
	return res, nil
}

func (cfg *MainConfig) pipeline(cc *cli.Context) (*pipeline.Pipeline, error) {
	pc, err := cfg.config()
	if err != nil {
		return nil, err
	}
	p := pipeline.New(pc)
	p.Stdin = cc.In
	p.Stdout = cc.Out
	p.Colors = cfg.colors(cc.Out)
	warn := color.New(color.FgYellow).SprintFunc()
	p.Warn = func(path, s string) {
		fmt.Fprintf(cc.Err, "%s %s: partially numeric string %q left unchanged\n", warn("warning:"), path, s)
	}
	return p, nil
}

func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return nil
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type UnwrapConfig struct {
	*MainConfig
	Out string `cli:"name=o desc='output file (default stdout)'"`

	Unwrap *cli.Command
}

type CoerceConfig struct {
	*MainConfig
	Out    string `cli:"name=o desc='output file (default stdout)'"`
	Strict bool   `cli:"name=strict desc='fail on partially numeric strings'"`

	Coerce *cli.Command
}

type RemapConfig struct {
	*MainConfig
	Stages   string `cli:"name=stages desc='stages output file'"`
	Features string `cli:"name=features desc='features output file'"`

	Remap *cli.Command
}

type AssembleConfig struct {
	*MainConfig
	Stages   string `cli:"name=stages desc='stages input file'"`
	Features string `cli:"name=features desc='features input file'"`
	Out      string `cli:"name=o desc='output file'"`

	Assemble *cli.Command
}

type RunConfig struct {
	*MainConfig
	Out    string `cli:"name=o desc='output file'"`
	Keep   string `cli:"name=keep desc='directory for intermediate artifacts'"`
	Strict bool   `cli:"name=strict desc='fail on partially numeric strings'"`

	Run *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Patch bool `cli:"name=patch desc='print a json merge patch'"`
	Lines bool `cli:"name=lines desc='print a line diff of the encoded documents'"`

	Diff *cli.Command
}

type InfoConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='list stages matching an expression'"`

	Info *cli.Command
}
