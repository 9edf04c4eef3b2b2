package cascade

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/parse"
)

func TestArtifactRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	stages, features := randomCascade(r)
	c, err := Assemble(stages, features)
	if err != nil {
		t.Fatal(err)
	}

	d, err := encode.MarshalJSON(StagesToIR(stages))
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	gotStages, err := StagesFromIR(node)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(stages, gotStages); diff != "" {
		t.Errorf("stages (-want +got):\n%s", diff)
	}

	d, err = encode.MarshalJSON(FeaturesToIR(features))
	if err != nil {
		t.Fatal(err)
	}
	node, err = parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	gotFeatures, err := FeaturesFromIR(node)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(features, gotFeatures); diff != "" {
		t.Errorf("features (-want +got):\n%s", diff)
	}

	d, err = encode.MarshalJSON(c.ToIR())
	if err != nil {
		t.Fatal(err)
	}
	node, err = parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	gotCascade, err := CascadeFromIR(node)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, gotCascade); diff != "" {
		t.Errorf("cascade (-want +got):\n%s", diff)
	}
}

func TestCascadeJSONShape(t *testing.T) {
	c := Cascade{
		{Threshold: -0.5, WeakClassifiers: []AssembledClassifier{
			{Features: []Rectangle{{X: 0, Y: 0, Width: 2, Height: 2, Weight: 1}}, Threshold: 0.1, LeafX: -1, LeafY: 1},
		}},
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(c.ToIR(), buf); err != nil {
		t.Fatal(err)
	}
	want := `[
    {
        "threshold": -0.5,
        "weak_classifiers": [
            {
                "features": [
                    {
                        "x": 0.0,
                        "y": 0.0,
                        "width": 2.0,
                        "height": 2.0,
                        "weight": 1.0
                    }
                ],
                "threshold": 0.1,
                "leaf_x": -1.0,
                "leaf_y": 1.0
            }
        ]
    }
]
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("encoded cascade (-want +got):\n%s", diff)
	}
}

func TestStagesLegacyKey(t *testing.T) {
	node := mustParse(t, `[{"threshold": -1, "weak_classifers": [{"feature_index": 3, "threshold": 0.5, "leaf_x": 1, "leaf_y": 2}]}]`)
	got, err := StagesFromIR(node)
	if err != nil {
		t.Fatal(err)
	}
	want := []Stage{{Threshold: -1, WeakClassifiers: []WeakClassifier{{FeatureIndex: 3, Threshold: 0.5, LeafX: 1, LeafY: 2}}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestArtifactErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		read func(string) error
		err  error
	}{
		{"stages not array", `{}`, readStages(t), ErrShapeMismatch},
		{"stage missing classifiers", `[{"threshold": 1}]`, readStages(t), ErrMissingField},
		{"classifier missing leaf", `[{"threshold": 1, "weak_classifiers": [{"feature_index": 0, "threshold": 1, "leaf_x": 1}]}]`, readStages(t), ErrMissingField},
		{"fractional index", `[{"threshold": 1, "weak_classifiers": [{"feature_index": 0.5, "threshold": 1, "leaf_x": 1, "leaf_y": 1}]}]`, readStages(t), ErrShapeMismatch},
		{"feature missing rectangles", `[{"rects": []}]`, readFeatures(t), ErrMissingField},
		{"rectangle missing weight", `[{"rectangles": [{"x": 0, "y": 0, "width": 1, "height": 1}]}]`, readFeatures(t), ErrMissingField},
		{"cascade classifier missing features", `[{"threshold": 1, "weak_classifiers": [{"threshold": 1, "leaf_x": 1, "leaf_y": 1}]}]`, readCascade(t), ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(tt.in); !errors.Is(err, tt.err) {
				t.Errorf("got %v want %v", err, tt.err)
			}
		})
	}
}

func readStages(t *testing.T) func(string) error {
	return func(s string) error {
		_, err := StagesFromIR(mustParse(t, s))
		return err
	}
}

func readFeatures(t *testing.T) func(string) error {
	return func(s string) error {
		_, err := FeaturesFromIR(mustParse(t, s))
		return err
	}
}

func readCascade(t *testing.T) func(string) error {
	return func(s string) error {
		_, err := CascadeFromIR(mustParse(t, s))
		return err
	}
}
