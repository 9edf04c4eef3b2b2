package ir

import (
	"strconv"
	"strings"
)

// Path returns a JSONPath-style location of y relative to its root, such as
// "$.stages[0].weakClassifiers[2]".
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// Field returns the path of field name below prefix.
func Field(prefix, name string) string {
	if name != "" && strings.IndexAny(name, "'.*$[] ") == -1 {
		return prefix + "." + name
	}
	return prefix + ".'" + strings.ReplaceAll(name, "'", "\\'") + "'"
}

// Index returns the path of element i below prefix.
func Index(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
