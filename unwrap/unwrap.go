// Package unwrap undoes the array wrapping introduced by XML-to-JSON bridges.
//
// Such bridges cannot tell a repeated child element from a scalar field, so
// they emit every group of repeated elements as an object with the single
// key "_" holding an array. Unwrap replaces each of those objects with the
// array it holds.
package unwrap

import (
	"github.com/signadot/haarprep/ir"
)

// DefaultSentinel is the reserved key used by the bridge for wrapped arrays.
const DefaultSentinel = "_"

type unwrapOpts struct {
	sentinel string
}

type Option func(*unwrapOpts)

// Sentinel sets the wrapper key. An empty name keeps the default.
func Sentinel(name string) Option {
	return func(o *unwrapOpts) {
		if name != "" {
			o.sentinel = name
		}
	}
}

// Unwrap returns a copy of node in which every object that has exactly one
// field, named by the sentinel, whose value is an array is replaced by that
// array. Values are unwrapped before the object is examined, so
// {"_": {"_": [1]}} becomes [1]. An object with the
// sentinel key and a non-array value is kept as an object. node is not
// modified.
func Unwrap(node *ir.Node, opts ...Option) *ir.Node {
	o := &unwrapOpts{sentinel: DefaultSentinel}
	for _, opt := range opts {
		opt(o)
	}
	return unwrap(node, o)
}

func unwrap(node *ir.Node, o *unwrapOpts) *ir.Node {
	switch node.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(node.Fields))
		for i, field := range node.Fields {
			kvs[i] = ir.KeyVal{Key: field.String, Val: unwrap(node.Values[i], o)}
		}
		// checked after the value's own unwrapping
		if len(kvs) == 1 && kvs[0].Key == o.sentinel && kvs[0].Val.Type == ir.ArrayType {
			return kvs[0].Val
		}
		return ir.FromKeyVals(kvs)
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, v := range node.Values {
			vals[i] = unwrap(v, o)
		}
		return ir.FromSlice(vals)
	default:
		return leaf(node)
	}
}

func leaf(node *ir.Node) *ir.Node {
	res := node.Clone()
	res.Parent = nil
	res.ParentIndex = 0
	res.ParentField = ""
	return res
}
