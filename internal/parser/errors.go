package parser

import (
	"errors"
	"fmt"
)

var (
	// File errors
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")

	// Header errors
	ErrMissingRateColumn = errors.New("could not find hourly rate column (expected one of hourly_rate, rate, salary)")
	ErrMissingColumn     = errors.New("missing required column")

	// Row errors
	ErrFieldCount    = errors.New("field count does not match header")
	ErrInvalidNumber = errors.New("invalid numeric value")
)

// FileError attributes a parse failure to the file it came from
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error parsing file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// RowError describes a data line that could not be turned into a record
type RowError struct {
	Line int
	Msg  string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *RowError) Unwrap() error { return e.Err }

func fieldCountError(line, got, want int) error {
	return &RowError{
		Line: line,
		Msg:  fmt.Sprintf("number of values (%d) doesn't match header length (%d)", got, want),
		Err:  ErrFieldCount,
	}
}

func missingColumnError(line int, column string) error {
	return &RowError{
		Line: line,
		Msg:  fmt.Sprintf("missing required column: %s", column),
		Err:  ErrMissingColumn,
	}
}

func invalidNumberError(line int, column, value string) error {
	return &RowError{
		Line: line,
		Msg:  fmt.Sprintf("invalid numeric value %q in column %s", value, column),
		Err:  ErrInvalidNumber,
	}
}
