package cascade

// Rectangle is a weighted sub-window of a feature.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// Feature is identified by its position in the features collection. The
// order of its rectangles is significant.
type Feature struct {
	Rectangles []Rectangle `json:"rectangles"`
}

// WeakClassifier refers to its feature by index into the features
// collection.
type WeakClassifier struct {
	FeatureIndex int     `json:"feature_index"`
	Threshold    float64 `json:"threshold"`
	LeafX        float64 `json:"leaf_x"`
	LeafY        float64 `json:"leaf_y"`
}

type Stage struct {
	Threshold       float64          `json:"threshold"`
	WeakClassifiers []WeakClassifier `json:"weak_classifiers"`
}

// AssembledClassifier is a WeakClassifier with the rectangles of its feature
// inlined.
type AssembledClassifier struct {
	Features  []Rectangle `json:"features"`
	Threshold float64     `json:"threshold"`
	LeafX     float64     `json:"leaf_x"`
	LeafY     float64     `json:"leaf_y"`
}

type AssembledStage struct {
	Threshold       float64               `json:"threshold"`
	WeakClassifiers []AssembledClassifier `json:"weak_classifiers"`
}

// Cascade is evaluated stage by stage in order.
type Cascade []AssembledStage

// Remapped is the output of Remap: the two join inputs of Assemble.
type Remapped struct {
	Stages   []Stage
	Features []Feature
}
