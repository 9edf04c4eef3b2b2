package cascade

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField         = errors.New("missing field")
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrReferentialIntegrity = errors.New("referential integrity")
)

// PathError records where in a document a structural error occurred.
type PathError struct {
	Path string
	Err  error
	Msg  string
}

func (e *PathError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Msg)
}

func (e *PathError) Unwrap() error { return e.Err }

func missing(path, field string) error {
	return &PathError{Path: path, Err: ErrMissingField, Msg: fmt.Sprintf("no %q", field)}
}

func shapef(path, format string, args ...any) error {
	return &PathError{Path: path, Err: ErrShapeMismatch, Msg: fmt.Sprintf(format, args...)}
}
