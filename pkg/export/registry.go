package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/de-tools/govern-atlas/pkg/models/domain"
	"github.com/de-tools/govern-atlas/pkg/models/store"
)

// Payload carries everything a formatter may need. Formatters are pure
// transformations; any field they do not use may be zero.
type Payload struct {
	State     *store.ProjectState
	Pillars   []domain.Pillar
	Scorecard domain.Scorecard
	Gaps      *domain.GapClosure
	Report    *domain.Report
	Plan      *domain.Plan
	Audit     []domain.AuditEntry
}

// Exporter renders an assessment payload to a writer.
type Exporter interface {
	Export(ctx context.Context, payload Payload, w io.Writer) error
}

// ExporterFactory creates an Exporter for its format.
type ExporterFactory func() (Exporter, error)

// Registry manages export format factories.
type Registry interface {
	// Register adds a new format factory
	Register(format string, factory ExporterFactory) error
	// Create instantiates an exporter for the specified format
	Create(format string) (Exporter, error)
	// ListFormats returns a sorted list of registered formats
	ListFormats() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ExporterFactory
}

// NewRegistry creates a new exporter registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ExporterFactory),
	}
}

func (r *registry) Register(format string, factory ExporterFactory) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.factories[format] = factory
	return nil
}

func (r *registry) Create(format string) (Exporter, error) {
	r.mu.RLock()
	factory, exists := r.factories[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("format %q is not registered", format)
	}

	return factory()
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for format := range r.factories {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
