// Package encode writes ir nodes as JSON or YAML.
//
// JSON output is indented (4 spaces by default) with object fields in node
// order. Floats always carry a decimal point or exponent, so a value that was
// a float before encoding decodes as a float again.
package encode
