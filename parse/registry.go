package parse

import (
	"sync"

	"github.com/otalvaro/escrutinio"
)

// Ensure Registry implements escrutinio.ParserRegistry at compile time.
var _ escrutinio.ParserRegistry = (*Registry)(nil)

// Registry is a concurrency-safe map of document types to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[escrutinio.DocumentType]escrutinio.RecordParser
}

// NewRegistry returns a registry preloaded with the E-14 parser.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[escrutinio.DocumentType]escrutinio.RecordParser)}
	r.Register(escrutinio.DocumentTypeE14, New())
	return r
}

// Get returns the parser registered for the document type, or nil.
func (r *Registry) Get(dt escrutinio.DocumentType) escrutinio.RecordParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsers[dt]
}

// Register associates a parser with a document type, replacing any previous
// registration.
func (r *Registry) Register(dt escrutinio.DocumentType, p escrutinio.RecordParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[dt] = p
}

// List returns the registered document types in unspecified order.
func (r *Registry) List() []escrutinio.DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]escrutinio.DocumentType, 0, len(r.parsers))
	for dt := range r.parsers {
		out = append(out, dt)
	}
	return out
}
