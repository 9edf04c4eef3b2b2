package cascade

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssembleSingle(t *testing.T) {
	features := []Feature{
		{Rectangles: []Rectangle{{X: 0, Y: 0, Width: 2, Height: 2, Weight: 1.0}}},
	}
	stages := []Stage{
		{Threshold: -0.5, WeakClassifiers: []WeakClassifier{
			{FeatureIndex: 0, Threshold: 0.1, LeafX: -1, LeafY: 1},
		}},
	}
	got, err := Assemble(stages, features)
	if err != nil {
		t.Fatal(err)
	}
	want := Cascade{
		{Threshold: -0.5, WeakClassifiers: []AssembledClassifier{
			{
				Features:  []Rectangle{{X: 0, Y: 0, Width: 2, Height: 2, Weight: 1.0}},
				Threshold: 0.1,
				LeafX:     -1,
				LeafY:     1,
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Assemble (-want +got):\n%s", diff)
	}
}

func TestAssembleOutOfRange(t *testing.T) {
	features := []Feature{{Rectangles: []Rectangle{{Width: 1, Height: 1, Weight: 1}}}}
	for _, idx := range []int{1, 5, -1} {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			stages := []Stage{
				{WeakClassifiers: []WeakClassifier{{FeatureIndex: 0}}},
				{WeakClassifiers: []WeakClassifier{{FeatureIndex: 0}, {FeatureIndex: idx}}},
			}
			got, err := Assemble(stages, features)
			if !errors.Is(err, ErrReferentialIntegrity) {
				t.Fatalf("got %v want ErrReferentialIntegrity", err)
			}
			if got != nil {
				t.Errorf("partial output returned: %v", got)
			}
			var pe *PathError
			if !errors.As(err, &pe) || pe.Path != "$[1].weak_classifiers[1].feature_index" {
				t.Errorf("unexpected error location: %v", err)
			}
		})
	}
	if _, err := Assemble([]Stage{{WeakClassifiers: []WeakClassifier{{FeatureIndex: 0}}}}, nil); !errors.Is(err, ErrReferentialIntegrity) {
		t.Errorf("empty features: got %v", err)
	}
}

func TestAssembleDoesNotAlias(t *testing.T) {
	features := []Feature{{Rectangles: []Rectangle{{X: 1}}}}
	stages := []Stage{{WeakClassifiers: []WeakClassifier{{FeatureIndex: 0}, {FeatureIndex: 0}}}}
	got, err := Assemble(stages, features)
	if err != nil {
		t.Fatal(err)
	}
	got[0].WeakClassifiers[0].Features[0].X = 99
	if features[0].Rectangles[0].X != 1 {
		t.Error("features modified through assembled cascade")
	}
	if got[0].WeakClassifiers[1].Features[0].X != 1 {
		t.Error("assembled classifiers share rectangles")
	}
}

// randomCascade builds stages and features with distinguishable values so
// ordering mistakes show up as mismatches.
func randomCascade(r *rand.Rand) ([]Stage, []Feature) {
	features := make([]Feature, 1+r.Intn(20))
	for i := range features {
		rects := make([]Rectangle, 1+r.Intn(4))
		for j := range rects {
			rects[j] = Rectangle{
				X: float64(i), Y: float64(j),
				Width: float64(r.Intn(24)), Height: float64(r.Intn(24)),
				Weight: r.NormFloat64(),
			}
		}
		features[i] = Feature{Rectangles: rects}
	}
	stages := make([]Stage, 1+r.Intn(10))
	for i := range stages {
		wcs := make([]WeakClassifier, 1+r.Intn(8))
		for j := range wcs {
			wcs[j] = WeakClassifier{
				FeatureIndex: r.Intn(len(features)),
				Threshold:    float64(i*100 + j),
				LeafX:        r.NormFloat64(),
				LeafY:        r.NormFloat64(),
			}
		}
		stages[i] = Stage{Threshold: float64(-i), WeakClassifiers: wcs}
	}
	return stages, features
}

func TestAssembleJoinAndOrder(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 100; n++ {
		stages, features := randomCascade(r)
		got, err := Assemble(stages, features)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(stages) {
			t.Fatalf("got %d stages want %d", len(got), len(stages))
		}
		for i, st := range stages {
			if got[i].Threshold != st.Threshold {
				t.Fatalf("stage %d threshold %v want %v", i, got[i].Threshold, st.Threshold)
			}
			if len(got[i].WeakClassifiers) != len(st.WeakClassifiers) {
				t.Fatalf("stage %d classifier count", i)
			}
			for j, wc := range st.WeakClassifiers {
				ac := got[i].WeakClassifiers[j]
				want := AssembledClassifier{
					Features:  features[wc.FeatureIndex].Rectangles,
					Threshold: wc.Threshold,
					LeafX:     wc.LeafX,
					LeafY:     wc.LeafY,
				}
				if diff := cmp.Diff(want, ac); diff != "" {
					t.Fatalf("stage %d classifier %d (-want +got):\n%s", i, j, diff)
				}
			}
		}
	}
}
