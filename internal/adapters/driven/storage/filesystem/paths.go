package filesystem

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// RootDirName is the folder created under the user's documents directory.
const RootDirName = "Sprout"

// Ensure PathResolver implements the interface.
var _ driven.PathResolver = (*PathResolver)(nil)

// PathResolver resolves the root storage directory.
type PathResolver struct {
	root string
}

// NewPathResolver creates a resolver for root.
// If root is empty, defaults to <Documents>/Sprout.
func NewPathResolver(root string) (*PathResolver, error) {
	if root == "" {
		def, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		root = def
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &PathResolver{root: abs}, nil
}

// DefaultRoot returns <Documents>/Sprout. XDG_DOCUMENTS_DIR is honoured
// when set; otherwise the documents directory is ~/Documents.
func DefaultRoot() (string, error) {
	if docs := os.Getenv("XDG_DOCUMENTS_DIR"); docs != "" {
		return filepath.Join(docs, RootDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents", RootDirName), nil
}

// Root returns the absolute root directory.
func (p *PathResolver) Root() string {
	return p.root
}

// EnsureRoot creates the root directory if it is absent.
func (p *PathResolver) EnsureRoot() error {
	return os.MkdirAll(p.root, 0755)
}
