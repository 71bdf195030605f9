package report

import (
	"fmt"
	"sync"

	"github.com/garyjia/payroll-report/internal/models"
)

// Generator builds one kind of report from employee records
type Generator interface {
	Generate(records []models.Employee) (string, error)
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func(records []models.Employee) (string, error)

// Generate calls f(records)
func (f GeneratorFunc) Generate(records []models.Employee) (string, error) {
	return f(records)
}

// Registry maps report type identifiers to generators. Populate it during
// start-up; lookups are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
	order      []string // Maintains registration order
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
		order:      make([]string, 0),
	}
}

// NewDefaultRegistry creates a registry holding the built-in report types
func NewDefaultRegistry(opts ...PayoutOption) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(PayoutReportType, NewPayoutGenerator(opts...)); err != nil {
		return nil, err
	}
	return r, nil
}

// Register associates a case-sensitive report type with a generator
func (r *Registry) Register(reportType string, g Generator) error {
	if reportType == "" {
		return ErrEmptyType
	}
	if g == nil {
		return ErrNilGenerator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[reportType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, reportType)
	}

	r.generators[reportType] = g
	r.order = append(r.order, reportType)
	return nil
}

// Get returns the generator for reportType
func (r *Registry) Get(reportType string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, exists := r.generators[reportType]
	if !exists {
		supported := make([]string, len(r.order))
		copy(supported, r.order)
		return nil, &UnsupportedTypeError{Requested: reportType, Supported: supported}
	}
	return g, nil
}

// Has reports whether reportType is registered
func (r *Registry) Has(reportType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.generators[reportType]
	return exists
}

// Types returns registered report types in registration order
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, len(r.order))
	copy(types, r.order)
	return types
}

// Generate looks up reportType and runs its generator
func (r *Registry) Generate(reportType string, records []models.Employee) (string, error) {
	g, err := r.Get(reportType)
	if err != nil {
		return "", err
	}
	return g.Generate(records)
}
