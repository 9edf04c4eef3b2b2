package cascade

import (
	"github.com/signadot/haarprep/debug"
	"github.com/signadot/haarprep/ir"
)

// Raw export vocabulary.
const (
	RawStages          = "stages"
	RawFeatures        = "features"
	RawStageThreshold  = "stageThreshold"
	RawWeakClassifiers = "weakClassifiers"
	RawInternalNodes   = "internalNodes"
	RawLeafValues      = "leafValues"
	RawRects           = "rects"
)

// Positions in the trainer's fixed-length encodings. A change here means the
// upstream export format changed.
const (
	// internalNodes: left, right, feature index, threshold
	InternalFeatureIndex = 2
	InternalThreshold    = 3
	InternalMinLen       = 4

	// leafValues: the two leaf outputs
	LeafXIndex = 0
	LeafYIndex = 1
	LeafMinLen = 2

	// rects entries: x, y, width, height, weight
	RectX      = 0
	RectY      = 1
	RectWidth  = 2
	RectHeight = 3
	RectWeight = 4
	RectLen    = 5
)

// rootWrappers are the container keys OpenCV places above the cascade.
var rootWrappers = []string{"opencv_storage", "cascade"}

// Remap converts a raw export into its stages and features collections.
func Remap(node *ir.Node) (*Remapped, error) {
	root := cascadeRoot(node)
	stagesNode, err := arrayField(root, RawStages, 0)
	if err != nil {
		return nil, err
	}
	featuresNode, err := arrayField(root, RawFeatures, 0)
	if err != nil {
		return nil, err
	}
	res := &Remapped{
		Stages:   make([]Stage, len(stagesNode.Values)),
		Features: make([]Feature, len(featuresNode.Values)),
	}
	for i, sn := range stagesNode.Values {
		st, err := RemapStage(sn)
		if err != nil {
			return nil, err
		}
		res.Stages[i] = st
	}
	for i, fn := range featuresNode.Values {
		f, err := RemapFeature(fn)
		if err != nil {
			return nil, err
		}
		res.Features[i] = f
	}
	if debug.Remap() {
		debug.Logf("remap: %d stages, %d features from %s\n", len(res.Stages), len(res.Features), root.Path())
	}
	return res, nil
}

func cascadeRoot(node *ir.Node) *ir.Node {
	for _, key := range rootWrappers {
		if ir.Get(node, RawStages) != nil {
			return node
		}
		if inner := ir.Get(node, key); inner != nil && inner.Type == ir.ObjectType {
			node = inner
		}
	}
	return node
}

func RemapStage(node *ir.Node) (Stage, error) {
	thresh, err := numberField(node, RawStageThreshold)
	if err != nil {
		return Stage{}, err
	}
	wcs, err := arrayField(node, RawWeakClassifiers, 0)
	if err != nil {
		return Stage{}, err
	}
	res := Stage{
		Threshold:       thresh,
		WeakClassifiers: make([]WeakClassifier, len(wcs.Values)),
	}
	for i, wn := range wcs.Values {
		wc, err := RemapClassifier(wn)
		if err != nil {
			return Stage{}, err
		}
		res.WeakClassifiers[i] = wc
	}
	return res, nil
}

func RemapClassifier(node *ir.Node) (WeakClassifier, error) {
	internal, err := arrayField(node, RawInternalNodes, InternalMinLen)
	if err != nil {
		return WeakClassifier{}, err
	}
	leaves, err := arrayField(node, RawLeafValues, LeafMinLen)
	if err != nil {
		return WeakClassifier{}, err
	}
	var res WeakClassifier
	if res.FeatureIndex, err = index(internal.Values[InternalFeatureIndex]); err != nil {
		return WeakClassifier{}, err
	}
	if res.Threshold, err = number(internal.Values[InternalThreshold]); err != nil {
		return WeakClassifier{}, err
	}
	if res.LeafX, err = number(leaves.Values[LeafXIndex]); err != nil {
		return WeakClassifier{}, err
	}
	if res.LeafY, err = number(leaves.Values[LeafYIndex]); err != nil {
		return WeakClassifier{}, err
	}
	return res, nil
}

func RemapFeature(node *ir.Node) (Feature, error) {
	rects, err := arrayField(node, RawRects, 0)
	if err != nil {
		return Feature{}, err
	}
	res := Feature{Rectangles: make([]Rectangle, len(rects.Values))}
	for i, rn := range rects.Values {
		r, err := RemapRectangle(rn)
		if err != nil {
			return Feature{}, err
		}
		res.Rectangles[i] = r
	}
	return res, nil
}

func RemapRectangle(node *ir.Node) (Rectangle, error) {
	if err := expectLen(node, RectLen); err != nil {
		return Rectangle{}, err
	}
	var vs [RectLen]float64
	for i := range vs {
		f, err := number(node.Values[i])
		if err != nil {
			return Rectangle{}, err
		}
		vs[i] = f
	}
	return Rectangle{
		X:      vs[RectX],
		Y:      vs[RectY],
		Width:  vs[RectWidth],
		Height: vs[RectHeight],
		Weight: vs[RectWeight],
	}, nil
}
