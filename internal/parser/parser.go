// Package parser turns comma-delimited timesheet files into normalized
// employee records.
//
// The first non-blank line is the header. The hourly rate may be supplied
// under any of models.RateColumnAliases and is always stored as HourlyRate.
// Quoting is not supported: a comma inside a value splits the field.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/models"
)

// Delimiter separates fields in header and data lines
const Delimiter = ","

var requiredColumns = []string{
	models.ColumnID,
	models.ColumnName,
	models.ColumnEmail,
	models.ColumnDepartment,
	models.ColumnHoursWorked,
}

// RawField is one header/value pair of a data line before coercion
type RawField struct {
	Header string
	Value  string
}

// Source is named in-memory timesheet content
type Source struct {
	Name    string
	Content []byte
}

// Parser reads timesheet files
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a new Parser
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFiles parses every path in order and concatenates the records.
// The first missing or malformed file aborts the whole call.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]models.Employee, error) {
	all := make([]models.Employee, 0)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := p.ParseFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}

	p.logger.Info("Timesheet files parsed",
		zap.Int("file_count", len(paths)),
		zap.Int("record_count", len(all)))

	return all, nil
}

// ParseSources parses in-memory sources in order, like ParseFiles
func (p *Parser) ParseSources(ctx context.Context, sources []Source) ([]models.Employee, error) {
	all := make([]models.Employee, 0)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := p.Parse(src.Name, src.Content)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}

	return all, nil
}

// ParseFile reads and parses a single file
func (p *Parser) ParseFile(path string) ([]models.Employee, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &FileError{Path: path, Err: err}
	}

	return p.Parse(path, content)
}

// Parse parses content read from source. Errors are wrapped in *FileError.
func (p *Parser) Parse(source string, content []byte) ([]models.Employee, error) {
	records, err := parseContent(content)
	if err != nil {
		p.logger.Debug("Failed to parse timesheet",
			zap.String("source", source),
			zap.Error(err))
		return nil, &FileError{Path: source, Err: err}
	}

	p.logger.Debug("Timesheet parsed",
		zap.String("source", source),
		zap.Int("record_count", len(records)))

	return records, nil
}

func parseContent(content []byte) ([]models.Employee, error) {
	text, err := decode(content)
	if err != nil {
		return nil, err
	}

	lines := splitLines(text)
	records := make([]models.Employee, 0)

	headerLine := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerLine = i
			break
		}
	}
	if headerLine < 0 {
		// Empty file: no header, nothing to check
		return records, nil
	}

	header := SplitLine(lines[headerLine])

	rateIndex, ok := FindRateColumn(header)
	if !ok {
		return nil, ErrMissingRateColumn
	}

	for i := headerLine + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		lineNo := i + 1

		values := SplitLine(lines[i])
		if len(values) != len(header) {
			return nil, fieldCountError(lineNo, len(values), len(header))
		}

		// Required columns are only enforced once a data line exists
		if len(records) == 0 {
			if col, ok := missingColumn(header); ok {
				return nil, missingColumnError(lineNo, col)
			}
		}

		fields := make([]RawField, len(header))
		for j, name := range header {
			fields[j] = RawField{Header: name, Value: values[j]}
		}

		record, err := materialize(lineNo, fields, rateIndex)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// materialize coerces typed columns and applies them in header order
func materialize(lineNo int, fields []RawField, rateIndex int) (models.Employee, error) {
	var e models.Employee

	for i, f := range fields {
		switch {
		case f.Header == models.ColumnID:
			id, err := strconv.ParseInt(f.Value, 10, 64)
			if err != nil {
				return e, invalidNumberError(lineNo, f.Header, f.Value)
			}
			e.ID = id
		case i == rateIndex:
			rate, err := parseReal(f.Value)
			if err != nil {
				return e, invalidNumberError(lineNo, f.Header, f.Value)
			}
			e.HourlyRate = rate
		case f.Header == models.ColumnHoursWorked:
			hours, err := parseReal(f.Value)
			if err != nil {
				return e, invalidNumberError(lineNo, f.Header, f.Value)
			}
			e.HoursWorked = hours
		case f.Header == models.ColumnName:
			e.Name = f.Value
		case f.Header == models.ColumnEmail:
			e.Email = f.Value
		case f.Header == models.ColumnDepartment:
			e.Department = f.Value
		}
	}

	return e, nil
}

// parseReal accepts overflowing literals as ±Inf. Hexadecimal floats are
// rejected even though strconv understands them.
func parseReal(s string) (float64, error) {
	if isHexLiteral(s) {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func missingColumn(header []string) (string, bool) {
	for _, col := range requiredColumns {
		if indexOf(header, col) < 0 {
			return col, true
		}
	}
	return "", false
}

// SplitLine trims a line, splits it on the delimiter and trims every field
func SplitLine(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), Delimiter)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// FindRateColumn returns the index of the rate column. Aliases are tried in
// priority order, so a header holding both "salary" and "rate" resolves to
// "rate" wherever the two appear.
func FindRateColumn(header []string) (int, bool) {
	for _, alias := range models.RateColumnAliases {
		if idx := indexOf(header, alias); idx >= 0 {
			return idx, true
		}
	}
	return -1, false
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
