package importers

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/importers/csv"
	"github.com/custodia-labs/sprout-cli/internal/importers/json"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps format keys and file extensions to parsers.
type Registry struct {
	byFormat    map[string]driven.FlashcardParser
	byExtension map[string]driven.FlashcardParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byFormat:    make(map[string]driven.FlashcardParser),
		byExtension: make(map[string]driven.FlashcardParser),
	}
}

// DefaultRegistry returns a registry with the CSV and JSON parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(csv.New())
	r.Register(json.New())
	return r
}

// Register adds a parser. A later parser replaces an earlier one for the
// same format key or extension.
func (r *Registry) Register(parser driven.FlashcardParser) {
	r.byFormat[strings.ToLower(parser.Format())] = parser
	for _, ext := range parser.Extensions() {
		r.byExtension[strings.ToLower(ext)] = parser
	}
}

// Resolve returns the parser for format, or for fileName's extension when
// format is empty.
func (r *Registry) Resolve(fileName, format string) (driven.FlashcardParser, error) {
	if key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), ".")); key != "" {
		if p, ok := r.byFormat[key]; ok {
			return p, nil
		}
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if p, ok := r.byExtension[ext]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Base(fileName))
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
