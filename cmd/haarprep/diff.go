package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/libdiff"
	"github.com/signadot/haarprep/pipeline"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Patch && cfg.Lines {
		return fmt.Errorf("%w: must specify at most one of -patch -lines", cli.ErrUsage)
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	a, err := p.ReadDocument(args[0])
	if err != nil {
		return err
	}
	b, err := p.ReadDocument(args[1])
	if err != nil {
		return err
	}
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return nil
	}
	switch {
	case cfg.Patch:
		patch, err := libdiff.MergePatch(a, b)
		if err != nil {
			return err
		}
		if err := encode.Encode(patch, cc.Out, p.Config.EncodeOptions(pipeline.Stdio, p.Colors)...); err != nil {
			return err
		}
	case cfg.Lines:
		if err := diffLines(p, cc.Out, a, b); err != nil {
			return err
		}
	default:
		if err := diffChanges(p, cc.Out, changes); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

func diffLines(p *pipeline.Pipeline, w io.Writer, a, b *ir.Node) error {
	ta, err := encodeString(p, a)
	if err != nil {
		return err
	}
	tb, err := encodeString(p, b)
	if err != nil {
		return err
	}
	del := color.New(color.FgRed).SprintFunc()
	ins := color.New(color.FgGreen).SprintFunc()
	for _, line := range strings.SplitAfter(libdiff.Lines(ta, tb), "\n") {
		switch {
		case strings.HasPrefix(line, "-"):
			line = del(line)
		case strings.HasPrefix(line, "+"):
			line = ins(line)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func diffChanges(p *pipeline.Pipeline, w io.Writer, changes []libdiff.Change) error {
	for _, c := range changes {
		var from, to string
		if c.From != nil {
			s, err := encodeWire(c.From)
			if err != nil {
				return err
			}
			from = s
		}
		if c.To != nil {
			s, err := encodeWire(c.To)
			if err != nil {
				return err
			}
			to = s
		}
		var err error
		switch c.Kind {
		case libdiff.Added:
			_, err = fmt.Fprintf(w, "%s %s: %s\n", color.GreenString("+"), c.Path, to)
		case libdiff.Removed:
			_, err = fmt.Fprintf(w, "%s %s: %s\n", color.RedString("-"), c.Path, from)
		default:
			_, err = fmt.Fprintf(w, "%s %s: %s -> %s\n", color.YellowString("~"), c.Path, from, to)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func encodeString(p *pipeline.Pipeline, node *ir.Node) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, p.Config.EncodeOptions(pipeline.Stdio, nil)...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func encodeWire(node *ir.Node) (string, error) {
	d, err := encode.MarshalJSON(node, encode.EncodeWire(true))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(d), "\n"), nil
}
