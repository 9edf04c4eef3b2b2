package libdiff

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/haarprep/encode"
	"github.com/signadot/haarprep/ir"
	"github.com/signadot/haarprep/parse"
)

// MergePatch returns the RFC 7386 merge patch taking from to to. Arrays are
// replaced whole, as merge patches cannot address elements.
func MergePatch(from, to *ir.Node) (*ir.Node, error) {
	a, err := encode.MarshalJSON(from, encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	b, err := encode.MarshalJSON(to, encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("could not create merge patch: %w", err)
	}
	return parse.Parse(d, parse.ParseJSON())
}

// Apply applies a merge patch to doc.
func Apply(doc, patch *ir.Node) (*ir.Node, error) {
	a, err := encode.MarshalJSON(doc, encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	p, err := encode.MarshalJSON(patch, encode.EncodeWire(true))
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.MergePatch(a, p)
	if err != nil {
		return nil, fmt.Errorf("could not apply merge patch: %w", err)
	}
	return parse.Parse(d, parse.ParseJSON())
}
