package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func unwrap(cfg *UnwrapConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unwrap.Parse(cc, args)
	if err != nil {
		return err
	}
	in, err := optArg("unwrap", args)
	if err != nil {
		return err
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	return p.UnwrapFile(in, cfg.Out)
}

func coerce(cfg *CoerceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Coerce.Parse(cc, args)
	if err != nil {
		return err
	}
	in, err := optArg("coerce", args)
	if err != nil {
		return err
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	p.Config.Strict = p.Config.Strict || cfg.Strict
	return p.CoerceFile(in, cfg.Out)
}

func remap(cfg *RemapConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remap.Parse(cc, args)
	if err != nil {
		return err
	}
	in, err := optArg("remap", args)
	if err != nil {
		return err
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	return p.RemapFile(in, cfg.Stages, cfg.Features)
}

func assemble(cfg *AssembleConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Assemble.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: assemble takes no arguments, got %v", cli.ErrUsage, args)
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	return p.AssembleFile(cfg.Stages, cfg.Features, cfg.Out)
}

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: run requires 1 file, got %v", cli.ErrUsage, args)
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	p.Config.Strict = p.Config.Strict || cfg.Strict
	return p.Run(args[0], cfg.Out, cfg.Keep)
}
