package main

import (
	"errors"
	"fmt"

	"github.com/scott-cotton/cli"
)

// usageExit is returned after a subcommand has printed its usage. diff uses
// exit code 1 for documents that differ.
const usageExit = cli.ExitCodeErr(2)

func haarprepMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		fmt.Fprintf(cc.Err, "%v\n", err)
		sub.Usage(cc, err)
		return usageExit
	}
	return err
}

// optArg returns the single optional positional argument, or "-".
func optArg(name string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("%w: %s takes at most 1 file, got %v", cli.ErrUsage, name, args)
}
