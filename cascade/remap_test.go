package cascade

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/haarprep/coerce"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/parse"
	"github.com/signadot/haarprep/unwrap"
)

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return node
}

func TestRemapClassifier(t *testing.T) {
	got, err := RemapClassifier(mustParse(t, `{"internalNodes": [0,0,2,0.035], "leafValues": [-0.6, 0.8]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := WeakClassifier{FeatureIndex: 2, Threshold: 0.035, LeafX: -0.6, LeafY: 0.8}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemapClassifier (-want +got):\n%s", diff)
	}
}

func TestRemapRectangle(t *testing.T) {
	got, err := RemapRectangle(mustParse(t, `[3, 7, 14, 4, -1.0]`))
	if err != nil {
		t.Fatal(err)
	}
	want := Rectangle{X: 3, Y: 7, Width: 14, Height: 4, Weight: -1}
	if got != want {
		t.Errorf("got %+v want %+v", got, want)
	}
}

const rawExport = `{
  "opencv_storage": {
    "cascade": {
      "stageType": "BOOST",
      "height": "24",
      "width": "24",
      "stages": {"_": [
        {
          "maxWeakCount": "2",
          "stageThreshold": "-1.2",
          "weakClassifiers": {"_": [
            {"internalNodes": "0 -1 1 -0.03", "leafValues": "0.8 -0.5"},
            {"internalNodes": "0 -1 0 0.01", "leafValues": "-0.7 0.6"}
          ]}
        },
        {
          "maxWeakCount": "1",
          "stageThreshold": "-0.9",
          "weakClassifiers": {"_": [
            {"internalNodes": "0 -1 1 0.2", "leafValues": "0.1 -0.1"}
          ]}
        }
      ]},
      "features": {"_": [
        {"rects": {"_": ["0 0 2 2 -1.", "0 0 1 1 2."]}},
        {"rects": {"_": ["1 2 3 4 -1.", "1 3 3 2 3."]}, "tilted": "0"}
      ]}
    }
  }
}`

func normalized(t *testing.T, s string) *ir.Node {
	t.Helper()
	return coerce.Coerce(unwrap.Unwrap(mustParse(t, s)))
}

func TestRemapExport(t *testing.T) {
	got, err := Remap(normalized(t, rawExport))
	if err != nil {
		t.Fatal(err)
	}
	want := &Remapped{
		Stages: []Stage{
			{Threshold: -1.2, WeakClassifiers: []WeakClassifier{
				{FeatureIndex: 1, Threshold: -0.03, LeafX: 0.8, LeafY: -0.5},
				{FeatureIndex: 0, Threshold: 0.01, LeafX: -0.7, LeafY: 0.6},
			}},
			{Threshold: -0.9, WeakClassifiers: []WeakClassifier{
				{FeatureIndex: 1, Threshold: 0.2, LeafX: 0.1, LeafY: -0.1},
			}},
		},
		Features: []Feature{
			{Rectangles: []Rectangle{{0, 0, 2, 2, -1}, {0, 0, 1, 1, 2}}},
			{Rectangles: []Rectangle{{1, 2, 3, 4, -1}, {1, 3, 3, 2, 3}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Remap (-want +got):\n%s", diff)
	}
}

func TestRemapErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
		path string
	}{
		{
			name: "no stages",
			in:   `{"features": []}`,
			err:  ErrMissingField,
			path: "$",
		},
		{
			name: "no features",
			in:   `{"stages": []}`,
			err:  ErrMissingField,
			path: "$",
		},
		{
			name: "no stage threshold",
			in:   `{"stages": [{"weakClassifiers": []}], "features": []}`,
			err:  ErrMissingField,
			path: "$.stages[0]",
		},
		{
			name: "no leaf values",
			in:   `{"stages": [{"stageThreshold": 1, "weakClassifiers": [{"internalNodes": [0, -1, 0, 1]}]}], "features": []}`,
			err:  ErrMissingField,
			path: "$.stages[0].weakClassifiers[0]",
		},
		{
			name: "short internal nodes",
			in:   `{"stages": [{"stageThreshold": 1, "weakClassifiers": [{"internalNodes": [0, -1, 0], "leafValues": [1, 2]}]}], "features": []}`,
			err:  ErrShapeMismatch,
			path: "$.stages[0].weakClassifiers[0].internalNodes",
		},
		{
			name: "short leaf values",
			in:   `{"stages": [{"stageThreshold": 1, "weakClassifiers": [{"internalNodes": [0, -1, 0, 1], "leafValues": [1]}]}], "features": []}`,
			err:  ErrShapeMismatch,
			path: "$.stages[0].weakClassifiers[0].leafValues",
		},
		{
			name: "fractional feature index",
			in:   `{"stages": [{"stageThreshold": 1, "weakClassifiers": [{"internalNodes": [0, -1, 0.5, 1], "leafValues": [1, 2]}]}], "features": []}`,
			err:  ErrShapeMismatch,
			path: "$.stages[0].weakClassifiers[0].internalNodes[2]",
		},
		{
			name: "uncoerced threshold",
			in:   `{"stages": [{"stageThreshold": "1.5", "weakClassifiers": []}], "features": []}`,
			err:  ErrShapeMismatch,
			path: "$.stages[0].stageThreshold",
		},
		{
			name: "short rectangle",
			in:   `{"stages": [], "features": [{"rects": [[0, 0, 1, 1]]}]}`,
			err:  ErrShapeMismatch,
			path: "$.features[0].rects[0]",
		},
		{
			name: "no rects",
			in:   `{"stages": [], "features": [{"tilted": 0}]}`,
			err:  ErrMissingField,
			path: "$.features[0]",
		},
		{
			name: "stages not an array",
			in:   `{"stages": {"_": "x"}, "features": []}`,
			err:  ErrShapeMismatch,
			path: "$.stages",
		},
		{
			name: "root not an object",
			in:   `[1, 2]`,
			err:  ErrShapeMismatch,
			path: "$",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Remap(mustParse(t, tt.in))
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v want %v", err, tt.err)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("%v is not a *PathError", err)
			}
			if pe.Path != tt.path {
				t.Errorf("path %q want %q", pe.Path, tt.path)
			}
			if !strings.HasPrefix(err.Error(), tt.path+": ") {
				t.Errorf("message %q lacks path", err)
			}
		})
	}
}

func TestRemapOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{
			name: "threshold",
			in:   `{"stages": [{"stageThreshold": 1e400, "weakClassifiers": []}], "features": []}`,
			msg:  "$.stages[0].stageThreshold: number 1e400 out of range",
		},
		{
			name: "rectangle",
			in:   `{"stages": [], "features": [{"rects": [[0, 0, 1, 1, -1e999]]}]}`,
			msg:  "$.features[0].rects[0][4]: number -1e999 out of range",
		},
		{
			name: "feature index",
			in:   `{"stages": [{"stageThreshold": 0, "weakClassifiers": [{"internalNodes": [0, -1, 1e400, 0], "leafValues": [1, 2]}]}], "features": []}`,
			msg:  "got Number 1e400",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Remap(mustParse(t, tt.in))
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("got %v want ErrShapeMismatch", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("message %q does not contain %q", err, tt.msg)
			}
		})
	}
}

func TestRemapNegativeIndexDeferred(t *testing.T) {
	// index validity is only known once features are available
	r, err := Remap(mustParse(t, `{"stages": [{"stageThreshold": 0, "weakClassifiers": [{"internalNodes": [0, -1, -1, 0], "leafValues": [1, 2]}]}], "features": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Assemble(r.Stages, r.Features); !errors.Is(err, ErrReferentialIntegrity) {
		t.Errorf("got %v want ErrReferentialIntegrity", err)
	}
}
