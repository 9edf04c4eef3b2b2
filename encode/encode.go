package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/haarprep/format"
	"github.com/signadot/haarprep/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	wire          bool

	format format.Format
	Color  func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 4,
	}
	for _, opt := range opts {
		opt(es)
	}
	if !es.format.IsJSON() {
		return encodeYAML(node, w)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// MarshalJSON returns the JSON encoding of node with the given options.
func MarshalJSON(node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	opts = append(opts, EncodeFormat(format.JSONFormat))
	if err := Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		s, err := quoteString(node.String)
		if err != nil {
			return err
		}
		return writeString(w, es.color(ir.StringType, ValueColor, s))
	case ir.NumberType:
		s, err := numberString(node)
		if err != nil {
			return fmt.Errorf("%w at %s: %w", ErrEncoding, node.Path(), err)
		}
		return writeString(w, es.color(ir.NumberType, ValueColor, s))
	case ir.BoolType:
		return writeString(w, es.color(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, es.color(ir.NullType, ValueColor, "null"))
	}
	return fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, es.color(ir.ObjectType, SepColor, "{}"))
	}
	if err := writeString(w, es.color(ir.ObjectType, SepColor, "{")); err != nil {
		return err
	}
	es.depth++
	for i, field := range node.Fields {
		if i > 0 {
			if err := writeString(w, es.color(ir.ObjectType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key, err := quoteString(field.String)
		if err != nil {
			return err
		}
		sep := ":"
		if !es.wire {
			sep = ": "
		}
		if err := writeString(w, es.color(ir.ObjectType, FieldColor, key)+es.color(ir.ObjectType, SepColor, sep)); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.color(ir.ObjectType, SepColor, "}"))
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, es.color(ir.ArrayType, SepColor, "[]"))
	}
	if err := writeString(w, es.color(ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, es.color(ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.color(ir.ArrayType, SepColor, "]"))
}

func quoteString(v string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func numberString(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return FormatFloat(*node.Float64)
	case node.Number != "":
		return node.Number, nil
	}
	return "", errors.New("number without value")
}

// FormatFloat formats f as a JSON number that parses back to exactly f.
// Integral values keep a trailing ".0".
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported value %v", f)
	}
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	s := strconv.FormatFloat(f, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// clean up e-09 to e-9
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
		return s, nil
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}
