package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/haarprep/cascade"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/pipeline"
)

func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		return err
	}
	in, err := optArg("info", args)
	if err != nil {
		return err
	}
	p, err := cfg.pipeline(cc)
	if err != nil {
		return err
	}
	c, err := p.ReadCascade(in)
	if err != nil {
		return err
	}
	res := cascade.Summarize(c).ToIR()
	if cfg.Where != "" {
		idxs, err := cascade.Filter(c, cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		vs := make([]*ir.Node, len(idxs))
		for i, idx := range idxs {
			vs[i] = ir.FromInt(int64(idx))
		}
		res = ir.FromKeyVals(append(keyVals(res), ir.KeyVal{Key: "matching_stages", Val: ir.FromSlice(vs)}))
	}
	return encode.Encode(res, cc.Out, p.Config.EncodeOptions(pipeline.Stdio, p.Colors)...)
}

func keyVals(node *ir.Node) []ir.KeyVal {
	res := make([]ir.KeyVal, len(node.Fields))
	for i, f := range node.Fields {
		res[i] = ir.KeyVal{Key: f.String, Val: node.Values[i]}
	}
	return res
}
