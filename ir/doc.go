// Package ir provides the document representation shared by all stages of
// the cascade normalization pipeline.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects which of the
// other fields carry the value:
//
//   - NullType: no value
//   - BoolType: Bool
//   - NumberType: Int64 or Float64, with Number as a textual fallback
//   - StringType: String
//   - ArrayType: Values, in order
//   - ObjectType: Fields[i] is the key (a StringType node) for Values[i]
//
// Object fields keep their input order; nothing in this package sorts keys.
//
// # Navigating Nodes
//
// Nodes built with the constructors in this package carry parent links
// (Parent, ParentIndex, ParentField), so Path can report a JSONPath-style
// location such as "$.stages[3].weakClassifiers[0]" for error messages.
//
// # Immutability
//
// Pipeline stages never modify an input tree. Transforms build new nodes
// with the constructors here, and Clone gives a deep copy when a subtree is
// reused verbatim.
//
// # Thread Safety
//
// Node structures are not thread-safe.
package ir
