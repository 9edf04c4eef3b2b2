// Package parse reads JSON and YAML documents into ir nodes.
//
// Object keys keep their document order, which the cascade artifacts rely
// on for stable output. Input that is not a single well-formed document is
// reported as ErrMalformedInput.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/haarprep/format"
	"github.com/signadot/haarprep/ir"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrTooDeep        = fmt.Errorf("%w: nesting too deep", ErrMalformedInput)
)

// DefaultMaxDepth bounds container nesting so that the recursive pipeline
// transforms cannot exhaust the stack.
const DefaultMaxDepth = 10000

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat, maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedInput)
	}
	switch pOpts.format {
	case format.YAMLFormat:
		return parseYAML(d, pOpts)
	default:
		return parseJSON(d, pOpts)
	}
}

func parseJSON(d []byte, opts *parseOpts) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeValue(dec, 0, opts)
	if err != nil {
		return nil, wrapMalformed(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, wrapMalformed(err)
		}
		return nil, fmt.Errorf("%w: unexpected %v after document at offset %d", ErrMalformedInput, tok, dec.InputOffset())
	}
	return res, nil
}

func wrapMalformed(err error) error {
	if errors.Is(err, ErrMalformedInput) {
		return err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformedInput)
	}
	return fmt.Errorf("%w: %w", ErrMalformedInput, err)
}

func decodeValue(dec *json.Decoder, depth int, opts *parseOpts) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok, depth, opts)
}

func decodeToken(dec *json.Decoder, tok json.Token, depth int, opts *parseOpts) (*ir.Node, error) {
	switch x := tok.(type) {
	case json.Delim:
		if depth >= opts.maxDepth {
			return nil, fmt.Errorf("%w: more than %d levels at offset %d", ErrTooDeep, opts.maxDepth, dec.InputOffset())
		}
		switch x {
		case '{':
			return decodeObject(dec, depth+1, opts)
		case '[':
			return decodeArray(dec, depth+1, opts)
		}
		return nil, fmt.Errorf("unexpected delimiter %q at offset %d", x, dec.InputOffset())
	case json.Number:
		return numberNode(string(x)), nil
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int, opts *parseOpts) (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ir.FromKeyVals(kvs), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key at offset %d, got %v", dec.InputOffset(), tok)
		}
		val, err := decodeValue(dec, depth, opts)
		if err != nil {
			return nil, err
		}
		kvs = setKey(kvs, key, val)
	}
}

// setKey adds key to kvs. A repeated key keeps its first position and takes
// the last value.
func setKey(kvs []ir.KeyVal, key string, val *ir.Node) []ir.KeyVal {
	for i := range kvs {
		if kvs[i].Key == key {
			kvs[i].Val = val
			return kvs
		}
	}
	return append(kvs, ir.KeyVal{Key: key, Val: val})
}

func decodeArray(dec *json.Decoder, depth int, opts *parseOpts) (*ir.Node, error) {
	vals := []*ir.Node{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return ir.FromSlice(vals), nil
		}
		val, err := decodeToken(dec, tok, depth, opts)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
}

// numberNode keeps integers as Int64 and everything else as Float64, falling
// back to the literal text when neither can hold the value.
func numberNode(v string) *ir.Node {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return ir.FromInt(i)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return ir.FromFloat(f)
	}
	return &ir.Node{Type: ir.NumberType, Number: v}
}
