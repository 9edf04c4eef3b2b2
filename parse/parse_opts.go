package parse

import (
	"github.com/signadot/haarprep/format"
)

type parseOpts struct {
	format   format.Format
	maxDepth int
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}

func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// MaxDepth sets the maximum container nesting accepted. Values below 1
// leave the default in place.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
