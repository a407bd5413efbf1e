package utils

import (
	"errors"
	"fmt"
)

// InvalidParameterError reports an unsupported or malformed argument at a
// call boundary: unknown cell type, negative degree, wrong point dimension.
// It is always detected before any work is done.
type InvalidParameterError struct {
	Op  string
	Msg string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: invalid parameter: %s", e.Op, e.Msg)
}

func InvalidParamf(op, format string, args ...interface{}) error {
	return &InvalidParameterError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

func IsInvalidParameter(err error) bool {
	var ipe *InvalidParameterError
	return errors.As(err, &ipe)
}

// ConstructionError reports an internal inconsistency while building an
// element: a singular dual matrix or a functional count that does not match
// the polynomial space dimension. It indicates a bug in a family definition,
// not user error, and is never retriable.
type ConstructionError struct {
	Family string
	Cell   string
	Degree int
	Msg    string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construction of %s degree %d on %s failed: %s",
		e.Family, e.Degree, e.Cell, e.Msg)
}

func ConstructionErrf(family, cell string, degree int, format string, args ...interface{}) error {
	return &ConstructionError{
		Family: family,
		Cell:   cell,
		Degree: degree,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}
