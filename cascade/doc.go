// Package cascade holds the canonical Haar cascade schema and the two
// domain stages of the normalization pipeline.
//
// Remap reads a bridge-normalized raw export (after unwrap and coerce) and
// splits it into a stages collection and a features collection. Assemble
// joins the two back together by feature index into a Cascade, in which
// every weak classifier carries its own rectangles and nothing refers to
// anything else.
//
// # Raw export layout
//
// The raw document has the shape
//
//	{
//	  "stages": [
//	    {"stageThreshold": -0.75, "weakClassifiers": [
//	      {"internalNodes": [0, -1, 2, 0.035], "leafValues": [-0.6, 0.8]}
//	    ]}
//	  ],
//	  "features": [
//	    {"rects": [[0, 0, 2, 2, -1.0], [0, 0, 1, 1, 2.0]]}
//	  ]
//	}
//
// optionally nested below "opencv_storage" and "cascade". Positions inside
// internalNodes and leafValues are fixed by the trainer; see the Internal*
// and Leaf* constants.
//
// # Errors
//
// Structural problems are reported as *PathError values wrapping one of
// ErrMissingField, ErrShapeMismatch or ErrReferentialIntegrity, so callers
// can use errors.Is to classify them and still print where they occurred.
package cascade
