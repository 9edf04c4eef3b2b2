package encode

import "github.com/signadot/haarprep/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Indent sets the number of spaces per nesting level. Negative values are
// ignored.
func Indent(n int) EncodeOption {
	return func(es *EncState) {
		if n >= 0 {
			es.indent = n
		}
	}
}

// EncodeWire writes JSON without any whitespace.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c != nil {
			es.Color = c.Color
		}
	}
}
