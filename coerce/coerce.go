// Package coerce turns whitespace-joined numeric strings back into numbers.
//
// Exporters that serialize numeric vectors as one space separated string
// lose the distinction between "3.5" and "1 2 3". Coerce recovers both
// shapes using only the token count:
//
//	"3.5"     -> 3.5
//	"1 2 3"   -> [1.0, 2.0, 3.0]
//	"abc"     -> "abc"
//	"1 abc"   -> "1 abc"
//
// A string that does not fully parse is returned unchanged; there is never a
// partial list.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/haarprep/debug"
	"github.com/signadot/haarprep/ir"
)

// ErrPartialNumeric is returned by CoerceChecked in strict mode for a string
// that looks numeric but is left unchanged. See OnPartial.
var ErrPartialNumeric = errors.New("partially numeric string")

type coerceOpts struct {
	onPartial func(path, s string)
	strict    bool
}

type Option func(*coerceOpts)

// OnPartial registers f to be called with the path and value of every
// string that looks numeric but is left unchanged: a multi-token string in
// which some but not all tokens are numbers, or one holding a token such as
// "inf", "nan", "1_000" or "0x1p-2" that is not accepted as a number.
func OnPartial(f func(path, s string)) Option {
	return func(o *coerceOpts) { o.onPartial = f }
}

// Strict makes CoerceChecked fail on partially numeric strings.
func Strict(v bool) Option {
	return func(o *coerceOpts) { o.strict = v }
}

// Coerce returns a copy of node in which every numeric string is replaced
// by a number or an array of numbers. Other values pass through unchanged
// and node is not modified.
func Coerce(node *ir.Node, opts ...Option) *ir.Node {
	o := &coerceOpts{}
	for _, opt := range opts {
		opt(o)
	}
	o.strict = false
	res, _ := coerce(node, o)
	return res
}

// CoerceChecked is like Coerce but, with Strict(true), reports the first
// partially numeric string as an error wrapping ErrPartialNumeric.
func CoerceChecked(node *ir.Node, opts ...Option) (*ir.Node, error) {
	o := &coerceOpts{}
	for _, opt := range opts {
		opt(o)
	}
	return coerce(node, o)
}

func coerce(node *ir.Node, o *coerceOpts) (*ir.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		kvs := make([]ir.KeyVal, len(node.Fields))
		for i, field := range node.Fields {
			v, err := coerce(node.Values[i], o)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: field.String, Val: v}
		}
		return ir.FromKeyVals(kvs), nil
	case ir.ArrayType:
		vals := make([]*ir.Node, len(node.Values))
		for i, elt := range node.Values {
			v, err := coerce(elt, o)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return ir.FromSlice(vals), nil
	case ir.StringType:
		res, ok := String(node.String)
		if ok {
			return res, nil
		}
		if isPartial(node.String) {
			if debug.Coerce() {
				debug.Logf("coerce: numeric looking string left unchanged at %s: %q\n", node.Path(), node.String)
			}
			if o.onPartial != nil {
				o.onPartial(node.Path(), node.String)
			}
			if o.strict {
				return nil, fmt.Errorf("%w at %s: %q", ErrPartialNumeric, node.Path(), node.String)
			}
		}
		return ir.FromString(node.String), nil
	default:
		res := node.Clone()
		res.Parent = nil
		res.ParentIndex = 0
		res.ParentField = ""
		return res, nil
	}
}

// String coerces a single string. It returns a number node for one numeric
// token, an array node for two or more numeric tokens, and false when s is
// not entirely numeric.
func String(s string) (*ir.Node, bool) {
	fs, ok := Floats(s)
	if !ok {
		return nil, false
	}
	if len(fs) == 1 {
		return ir.FromFloat(fs[0]), true
	}
	return ir.FromFloats(fs), true
}

// Floats splits s on whitespace and parses every token. It reports false if
// there are no tokens or any token is not a number.
func Floats(s string) ([]float64, bool) {
	toks := strings.Fields(s)
	if len(toks) == 0 {
		return nil, false
	}
	res := make([]float64, len(toks))
	for i, tok := range toks {
		f, ok := parseToken(tok)
		if !ok {
			return nil, false
		}
		res[i] = f
	}
	return res, true
}

// parseToken accepts decimal floating point literals with a finite value.
// Hexadecimal floats and the spellings of infinity and NaN are not numbers
// here since they cannot be written back as JSON.
func parseToken(tok string) (float64, bool) {
	if strings.ContainsAny(tok, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func isPartial(s string) bool {
	toks := strings.Fields(s)
	n := 0
	for _, tok := range toks {
		if _, ok := parseToken(tok); ok {
			n++
			continue
		}
		if numberLike(tok) {
			return true
		}
	}
	return len(toks) > 1 && n > 0 && n < len(toks)
}

// numberLike reports whether strconv reads tok as a number once digit
// separators are dropped, including out of range values.
func numberLike(tok string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(tok, "_", ""), 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
