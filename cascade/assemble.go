package cascade

import (
	"fmt"
	"slices"

	"github.com/signadot/haarprep/debug"
	"github.com/signadot/haarprep/ir"
)

// Assemble joins each weak classifier to the feature it references,
// producing a cascade with the rectangles inlined. Stage and classifier
// order are preserved. A feature index outside features fails with
// ErrReferentialIntegrity.
func Assemble(stages []Stage, features []Feature) (Cascade, error) {
	res := make(Cascade, len(stages))
	for i := range stages {
		st := &stages[i]
		out := AssembledStage{
			Threshold:       st.Threshold,
			WeakClassifiers: make([]AssembledClassifier, len(st.WeakClassifiers)),
		}
		for j := range st.WeakClassifiers {
			wc := &st.WeakClassifiers[j]
			if wc.FeatureIndex < 0 || wc.FeatureIndex >= len(features) {
				return nil, &PathError{
					Path: ir.Field(ir.Index(ir.Field(ir.Index("$", i), "weak_classifiers"), j), "feature_index"),
					Err:  ErrReferentialIntegrity,
					Msg:  fmt.Sprintf("feature index %d not in [0, %d)", wc.FeatureIndex, len(features)),
				}
			}
			out.WeakClassifiers[j] = AssembledClassifier{
				Features:  slices.Clone(features[wc.FeatureIndex].Rectangles),
				Threshold: wc.Threshold,
				LeafX:     wc.LeafX,
				LeafY:     wc.LeafY,
			}
		}
		res[i] = out
	}
	if debug.Assemble() {
		debug.Logf("assemble: %d stages against %d features\n", len(res), len(features))
	}
	return res, nil
}
