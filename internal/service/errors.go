package service

import (
	"errors"
	"io/fs"

	"github.com/garyjia/payroll-report/internal/parser"
)

// Kind classifies a failure for the outer shells
type Kind int

const (
	// KindValue covers malformed input and unknown report types
	KindValue Kind = iota
	// KindFileNotFound means an input path does not exist
	KindFileNotFound
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file_not_found"
	default:
		return "value"
	}
}

// Error is the single failure type surfaced by ReportService
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps any error to its Kind
func Classify(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	if errors.Is(err, parser.ErrFileNotFound) || errors.Is(err, fs.ErrNotExist) {
		return KindFileNotFound
	}
	return KindValue
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return &Error{Kind: Classify(err), Err: err}
}
