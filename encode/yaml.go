package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/haarprep/ir"
)

func encodeYAML(node *ir.Node, w io.Writer) error {
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	d, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func toYAML(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, field := range node.Fields {
			v, err := toYAML(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: field.String, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			v, err := toYAML(elt)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		}
		return node.Number, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NullType:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
}
