package parse

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/signadot/haarprep/ir"
)

func parseYAML(d []byte, opts *parseOpts) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap(), yaml.AllowDuplicateMapKey()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	return fromYAML(v, 0, opts)
}

func fromYAML(v any, depth int, opts *parseOpts) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		if depth >= opts.maxDepth {
			return nil, fmt.Errorf("%w: more than %d levels", ErrTooDeep, opts.maxDepth)
		}
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			val, err := fromYAML(item.Value, depth+1, opts)
			if err != nil {
				return nil, err
			}
			kvs = setKey(kvs, fmt.Sprint(item.Key), val)
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		if depth >= opts.maxDepth {
			return nil, fmt.Errorf("%w: more than %d levels", ErrTooDeep, opts.maxDepth)
		}
		vals := make([]*ir.Node, 0, len(x))
		for _, elt := range x {
			val, err := fromYAML(elt, depth+1, opts)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return ir.FromSlice(vals), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromFloat(float64(x)), nil
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrMalformedInput, v)
}
