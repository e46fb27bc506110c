package driven

import "context"

// Archiver builds and restores backup archives. An archive holds the root
// directory under a data prefix plus an optional settings entry.
type Archiver interface {
	// Create writes root and settings into a new archive at dest.
	Create(ctx context.Context, root, dest string, settings []byte) (int, error)

	// Restore reads the settings entry, wipes root, recreates it and extracts
	// the data subtree into it. The archive is opened before anything is
	// removed. Returns the settings (nil if absent) and the file count.
	Restore(ctx context.Context, archivePath, root string) ([]byte, int, error)
}
