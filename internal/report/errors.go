package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is returned when no generator is registered for a report type
	ErrUnsupportedType = errors.New("unsupported report type")

	// Registration errors
	ErrEmptyType        = errors.New("report type cannot be empty")
	ErrNilGenerator     = errors.New("cannot register nil generator")
	ErrDuplicateType    = errors.New("report type already registered")
	ErrUnencodableValue = errors.New("value cannot be encoded")
)

// UnsupportedTypeError names the requested report type and the known ones
type UnsupportedTypeError struct {
	Requested string
	Supported []string
}

func (e *UnsupportedTypeError) Error() string {
	supported := "none"
	if len(e.Supported) > 0 {
		supported = strings.Join(e.Supported, ", ")
	}
	return fmt.Sprintf("unsupported report type: %s. Supported types: %s", e.Requested, supported)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }
