package cascade

import (
	"fmt"

	"github.com/signadot/haarprep/ir"
)

func expectType(node *ir.Node, t ir.Type) error {
	if node.Type != t {
		return shapef(node.Path(), "expected %s, got %s", t, node.Type)
	}
	return nil
}

func field(node *ir.Node, keys ...string) (*ir.Node, error) {
	if err := expectType(node, ir.ObjectType); err != nil {
		return nil, err
	}
	for _, key := range keys {
		if v := ir.Get(node, key); v != nil {
			return v, nil
		}
	}
	return nil, missing(node.Path(), keys[0])
}

func arrayField(node *ir.Node, key string, minLen int) (*ir.Node, error) {
	v, err := field(node, key)
	if err != nil {
		return nil, err
	}
	if err := expectLen(v, minLen); err != nil {
		return nil, err
	}
	return v, nil
}

func expectLen(node *ir.Node, minLen int) error {
	if err := expectType(node, ir.ArrayType); err != nil {
		return err
	}
	if len(node.Values) < minLen {
		return shapef(node.Path(), "expected at least %d elements, got %d", minLen, len(node.Values))
	}
	return nil
}

func number(node *ir.Node) (float64, error) {
	f, ok := node.Float()
	if !ok {
		switch node.Type {
		case ir.StringType:
			return 0, shapef(node.Path(), "expected Number, got String %q", node.String)
		case ir.NumberType:
			return 0, shapef(node.Path(), "number %s out of range", node.Number)
		}
		return 0, shapef(node.Path(), "expected Number, got %s", node.Type)
	}
	return f, nil
}

func numberField(node *ir.Node, keys ...string) (float64, error) {
	v, err := field(node, keys...)
	if err != nil {
		return 0, err
	}
	return number(v)
}

func index(node *ir.Node) (int, error) {
	i, ok := node.Int()
	if !ok {
		return 0, shapef(node.Path(), "expected integer feature index, got %s", describe(node))
	}
	if int64(int(i)) != i {
		return 0, shapef(node.Path(), "feature index %d overflows int", i)
	}
	return int(i), nil
}

func describe(node *ir.Node) string {
	if f, ok := node.Float(); ok {
		return fmt.Sprintf("Number %v", f)
	}
	if node.Type == ir.NumberType {
		return fmt.Sprintf("Number %s", node.Number)
	}
	return node.Type.String()
}
