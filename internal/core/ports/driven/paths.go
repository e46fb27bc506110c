package driven

// PathResolver locates the root storage directory.
type PathResolver interface {
	// Root returns the absolute root directory.
	Root() string

	// EnsureRoot creates the root directory if it is absent.
	EnsureRoot() error
}
