package cascade

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/signadot/haarprep/ir"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Stages      int
	Classifiers int
	Rectangles  int

	// MaxStageSize is the largest number of weak classifiers in one stage.
	MaxStageSize int

	// Stage threshold statistics, zero for an empty cascade.
	MinThreshold  float64
	MaxThreshold  float64
	MeanThreshold float64
}

func Summarize(c Cascade) Summary {
	s := Summary{Stages: len(c)}
	if len(c) == 0 {
		return s
	}
	thresholds := make([]float64, len(c))
	for i := range c {
		st := &c[i]
		s.Classifiers += len(st.WeakClassifiers)
		s.MaxStageSize = max(s.MaxStageSize, len(st.WeakClassifiers))
		s.Rectangles += stageRects(st)
		thresholds[i] = st.Threshold
	}
	s.MinThreshold = floats.Min(thresholds)
	s.MaxThreshold = floats.Max(thresholds)
	s.MeanThreshold = stat.Mean(thresholds, nil)
	return s
}

func (s Summary) ToIR() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: "stages", Val: ir.FromInt(int64(s.Stages))},
		{Key: "classifiers", Val: ir.FromInt(int64(s.Classifiers))},
		{Key: "rectangles", Val: ir.FromInt(int64(s.Rectangles))},
		{Key: "max_stage_size", Val: ir.FromInt(int64(s.MaxStageSize))},
	}
	if s.Stages > 0 {
		kvs = append(kvs,
			ir.KeyVal{Key: "min_threshold", Val: ir.FromFloat(s.MinThreshold)},
			ir.KeyVal{Key: "max_threshold", Val: ir.FromFloat(s.MaxThreshold)},
			ir.KeyVal{Key: "mean_threshold", Val: ir.FromFloat(s.MeanThreshold)})
	}
	return ir.FromKeyVals(kvs)
}

func stageRects(st *AssembledStage) int {
	n := 0
	for j := range st.WeakClassifiers {
		n += len(st.WeakClassifiers[j].Features)
	}
	return n
}

func stageEnv(i int, st *AssembledStage) map[string]any {
	return map[string]any{
		"index":       i,
		"threshold":   st.Threshold,
		"classifiers": len(st.WeakClassifiers),
		"rectangles":  stageRects(st),
	}
}

// Filter returns the indices of the stages for which the boolean expression
// src holds. The expression sees index, threshold, classifiers (the number
// of weak classifiers) and rectangles (the number of inlined rectangles).
//
//	classifiers > 10 && threshold < -5
func Filter(c Cascade, src string) ([]int, error) {
	prog, err := expr.Compile(src, expr.Env(stageEnv(0, &AssembledStage{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid stage filter %q: %w", src, err)
	}
	res := []int{}
	for i := range c {
		out, err := expr.Run(prog, stageEnv(i, &c[i]))
		if err != nil {
			return nil, fmt.Errorf("stage filter %q on stage %d: %w", src, i, err)
		}
		if ok, _ := out.(bool); ok {
			res = append(res, i)
		}
	}
	return res, nil
}
