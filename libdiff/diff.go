// Package libdiff compares cascade artifacts.
//
// Diff reports structural differences between two documents by path. Numbers
// compare by value, so an artifact rewritten with 1.0 in place of 1 has no
// differences. MergePatch and Lines render the same differences as an RFC
// 7386 merge patch or as a line diff of the encoded documents.
package libdiff

import (
	"github.com/signadot/haarprep/ir"
)

type Kind int

const (
	Changed Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	}
	return "changed"
}

// Change is a single difference. From is nil for Added and To is nil for
// Removed.
type Change struct {
	Path string
	Kind Kind
	From *ir.Node
	To   *ir.Node
}

// Diff returns the differences between from and to in document order.
// Object fields match by key and array elements by index.
func Diff(from, to *ir.Node) []Change {
	var res []Change
	diff("$", from, to, &res)
	return res
}

func diff(path string, from, to *ir.Node, res *[]Change) {
	if from.Type != to.Type {
		*res = append(*res, Change{Path: path, Kind: Changed, From: from, To: to})
		return
	}
	switch {
	case from.Type.IsLeaf():
		if !ir.Equal(from, to) {
			*res = append(*res, Change{Path: path, Kind: Changed, From: from, To: to})
		}
	case from.Type == ir.ObjectType:
		diffObject(path, from, to, res)
	default:
		n := min(len(from.Values), len(to.Values))
		for i := 0; i < n; i++ {
			diff(ir.Index(path, i), from.Values[i], to.Values[i], res)
		}
		for i := n; i < len(from.Values); i++ {
			*res = append(*res, Change{Path: ir.Index(path, i), Kind: Removed, From: from.Values[i]})
		}
		for i := n; i < len(to.Values); i++ {
			*res = append(*res, Change{Path: ir.Index(path, i), Kind: Added, To: to.Values[i]})
		}
	}
}

func diffObject(path string, from, to *ir.Node, res *[]Change) {
	toIndex := make(map[string]int, len(to.Fields))
	for i, f := range to.Fields {
		toIndex[f.String] = i
	}
	seen := make(map[string]bool, len(from.Fields))
	for i, f := range from.Fields {
		seen[f.String] = true
		j, ok := toIndex[f.String]
		if !ok {
			*res = append(*res, Change{Path: ir.Field(path, f.String), Kind: Removed, From: from.Values[i]})
			continue
		}
		diff(ir.Field(path, f.String), from.Values[i], to.Values[j], res)
	}
	for j, f := range to.Fields {
		if seen[f.String] {
			continue
		}
		*res = append(*res, Change{Path: ir.Field(path, f.String), Kind: Added, To: to.Values[j]})
	}
}
