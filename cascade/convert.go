package cascade

import (
	"github.com/signadot/haarprep/ir"
)

// Canonical artifact vocabulary.
const (
	KeyX               = "x"
	KeyY               = "y"
	KeyWidth           = "width"
	KeyHeight          = "height"
	KeyWeight          = "weight"
	KeyRectangles      = "rectangles"
	KeyFeatureIndex    = "feature_index"
	KeyThreshold       = "threshold"
	KeyLeafX           = "leaf_x"
	KeyLeafY           = "leaf_y"
	KeyWeakClassifiers = "weak_classifiers"
	KeyFeatures        = "features"

	// written by earlier versions of the stages artifact
	legacyWeakClassifiers = "weak_classifers"
)

func (r Rectangle) ToIR() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyX, Val: ir.FromFloat(r.X)},
		{Key: KeyY, Val: ir.FromFloat(r.Y)},
		{Key: KeyWidth, Val: ir.FromFloat(r.Width)},
		{Key: KeyHeight, Val: ir.FromFloat(r.Height)},
		{Key: KeyWeight, Val: ir.FromFloat(r.Weight)},
	})
}

func rectsToIR(rs []Rectangle) *ir.Node {
	vs := make([]*ir.Node, len(rs))
	for i := range rs {
		vs[i] = rs[i].ToIR()
	}
	return ir.FromSlice(vs)
}

func (f Feature) ToIR() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyRectangles, Val: rectsToIR(f.Rectangles)},
	})
}

func (wc WeakClassifier) ToIR() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyFeatureIndex, Val: ir.FromInt(int64(wc.FeatureIndex))},
		{Key: KeyThreshold, Val: ir.FromFloat(wc.Threshold)},
		{Key: KeyLeafX, Val: ir.FromFloat(wc.LeafX)},
		{Key: KeyLeafY, Val: ir.FromFloat(wc.LeafY)},
	})
}

func (s Stage) ToIR() *ir.Node {
	vs := make([]*ir.Node, len(s.WeakClassifiers))
	for i := range s.WeakClassifiers {
		vs[i] = s.WeakClassifiers[i].ToIR()
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyThreshold, Val: ir.FromFloat(s.Threshold)},
		{Key: KeyWeakClassifiers, Val: ir.FromSlice(vs)},
	})
}

func (ac AssembledClassifier) ToIR() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyFeatures, Val: rectsToIR(ac.Features)},
		{Key: KeyThreshold, Val: ir.FromFloat(ac.Threshold)},
		{Key: KeyLeafX, Val: ir.FromFloat(ac.LeafX)},
		{Key: KeyLeafY, Val: ir.FromFloat(ac.LeafY)},
	})
}

func (as AssembledStage) ToIR() *ir.Node {
	vs := make([]*ir.Node, len(as.WeakClassifiers))
	for i := range as.WeakClassifiers {
		vs[i] = as.WeakClassifiers[i].ToIR()
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: KeyThreshold, Val: ir.FromFloat(as.Threshold)},
		{Key: KeyWeakClassifiers, Val: ir.FromSlice(vs)},
	})
}

func StagesToIR(stages []Stage) *ir.Node {
	vs := make([]*ir.Node, len(stages))
	for i := range stages {
		vs[i] = stages[i].ToIR()
	}
	return ir.FromSlice(vs)
}

func FeaturesToIR(features []Feature) *ir.Node {
	vs := make([]*ir.Node, len(features))
	for i := range features {
		vs[i] = features[i].ToIR()
	}
	return ir.FromSlice(vs)
}

func (c Cascade) ToIR() *ir.Node {
	vs := make([]*ir.Node, len(c))
	for i := range c {
		vs[i] = c[i].ToIR()
	}
	return ir.FromSlice(vs)
}

func RectangleFromIR(node *ir.Node) (Rectangle, error) {
	var (
		r   Rectangle
		err error
	)
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{KeyX, &r.X},
		{KeyY, &r.Y},
		{KeyWidth, &r.Width},
		{KeyHeight, &r.Height},
		{KeyWeight, &r.Weight},
	} {
		if *f.dst, err = numberField(node, f.key); err != nil {
			return Rectangle{}, err
		}
	}
	return r, nil
}

func rectsFromIR(node *ir.Node) ([]Rectangle, error) {
	if err := expectType(node, ir.ArrayType); err != nil {
		return nil, err
	}
	res := make([]Rectangle, len(node.Values))
	for i, rn := range node.Values {
		r, err := RectangleFromIR(rn)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}

func FeatureFromIR(node *ir.Node) (Feature, error) {
	rn, err := field(node, KeyRectangles)
	if err != nil {
		return Feature{}, err
	}
	rs, err := rectsFromIR(rn)
	if err != nil {
		return Feature{}, err
	}
	return Feature{Rectangles: rs}, nil
}

func WeakClassifierFromIR(node *ir.Node) (WeakClassifier, error) {
	var res WeakClassifier
	in, err := field(node, KeyFeatureIndex)
	if err != nil {
		return res, err
	}
	if res.FeatureIndex, err = index(in); err != nil {
		return res, err
	}
	if res.Threshold, err = numberField(node, KeyThreshold); err != nil {
		return res, err
	}
	if res.LeafX, err = numberField(node, KeyLeafX); err != nil {
		return res, err
	}
	if res.LeafY, err = numberField(node, KeyLeafY); err != nil {
		return res, err
	}
	return res, nil
}

func StageFromIR(node *ir.Node) (Stage, error) {
	thresh, err := numberField(node, KeyThreshold)
	if err != nil {
		return Stage{}, err
	}
	wcs, err := field(node, KeyWeakClassifiers, legacyWeakClassifiers)
	if err != nil {
		return Stage{}, err
	}
	if err := expectType(wcs, ir.ArrayType); err != nil {
		return Stage{}, err
	}
	res := Stage{Threshold: thresh, WeakClassifiers: make([]WeakClassifier, len(wcs.Values))}
	for i, wn := range wcs.Values {
		if res.WeakClassifiers[i], err = WeakClassifierFromIR(wn); err != nil {
			return Stage{}, err
		}
	}
	return res, nil
}

func AssembledClassifierFromIR(node *ir.Node) (AssembledClassifier, error) {
	var res AssembledClassifier
	fn, err := field(node, KeyFeatures)
	if err != nil {
		return res, err
	}
	if res.Features, err = rectsFromIR(fn); err != nil {
		return res, err
	}
	if res.Threshold, err = numberField(node, KeyThreshold); err != nil {
		return res, err
	}
	if res.LeafX, err = numberField(node, KeyLeafX); err != nil {
		return res, err
	}
	if res.LeafY, err = numberField(node, KeyLeafY); err != nil {
		return res, err
	}
	return res, nil
}

func AssembledStageFromIR(node *ir.Node) (AssembledStage, error) {
	thresh, err := numberField(node, KeyThreshold)
	if err != nil {
		return AssembledStage{}, err
	}
	wcs, err := field(node, KeyWeakClassifiers)
	if err != nil {
		return AssembledStage{}, err
	}
	if err := expectType(wcs, ir.ArrayType); err != nil {
		return AssembledStage{}, err
	}
	res := AssembledStage{Threshold: thresh, WeakClassifiers: make([]AssembledClassifier, len(wcs.Values))}
	for i, wn := range wcs.Values {
		if res.WeakClassifiers[i], err = AssembledClassifierFromIR(wn); err != nil {
			return AssembledStage{}, err
		}
	}
	return res, nil
}

// StagesFromIR reads a stages artifact.
func StagesFromIR(node *ir.Node) ([]Stage, error) {
	if err := expectType(node, ir.ArrayType); err != nil {
		return nil, err
	}
	res := make([]Stage, len(node.Values))
	for i, sn := range node.Values {
		st, err := StageFromIR(sn)
		if err != nil {
			return nil, err
		}
		res[i] = st
	}
	return res, nil
}

// FeaturesFromIR reads a features artifact.
func FeaturesFromIR(node *ir.Node) ([]Feature, error) {
	if err := expectType(node, ir.ArrayType); err != nil {
		return nil, err
	}
	res := make([]Feature, len(node.Values))
	for i, fn := range node.Values {
		f, err := FeatureFromIR(fn)
		if err != nil {
			return nil, err
		}
		res[i] = f
	}
	return res, nil
}

// CascadeFromIR reads a combined cascade artifact.
func CascadeFromIR(node *ir.Node) (Cascade, error) {
	if err := expectType(node, ir.ArrayType); err != nil {
		return nil, err
	}
	res := make(Cascade, len(node.Values))
	for i, sn := range node.Values {
		st, err := AssembledStageFromIR(sn)
		if err != nil {
			return nil, err
		}
		res[i] = st
	}
	return res, nil
}
