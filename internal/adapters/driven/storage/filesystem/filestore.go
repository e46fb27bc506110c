package filesystem

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore copies attachments into a session and tracks them in session.json.
type FileStore struct{}

// NewFileStore creates a new file store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Add copies each source into its category folder. Paths already recorded
// count as duplicates and are not copied again. A failed copy is logged and
// the remaining files are still added.
func (s *FileStore) Add(_ context.Context, sessionPath string, sources []string) (*domain.AddFilesResult, error) {
	rec, err := readDescriptor(sessionPath)
	if err != nil {
		return nil, err
	}

	recorded := make(map[string]bool, len(rec.Files)+len(sources))
	for _, f := range rec.Files {
		recorded[f] = true
	}

	result := &domain.AddFilesResult{}
	for _, src := range sources {
		rel := domain.RelativeFilePath(src)
		if recorded[rel] {
			result.Duplicates++
			continue
		}
		dst := filepath.Join(sessionPath, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			logger.Error("copy %s: %v", src, err)
			result.Failed = append(result.Failed, src)
			continue
		}
		logger.Debug("copied %s to %s", src, rel)
		recorded[rel] = true
		rec.Files = append(rec.Files, rel)
		result.Added++
	}

	if result.Added > 0 {
		rec.LastModified = time.Now()
		if err := writeDescriptor(sessionPath, rec); err != nil {
			return nil, err
		}
	}
	result.Files = append([]string{}, rec.Files...)
	return result, nil
}

// Delete removes an attachment. fileRef is matched against the stored
// relative paths first, then against their base names. A file already
// missing from disk is not an error.
func (s *FileStore) Delete(_ context.Context, sessionPath, fileRef string) (string, error) {
	rec, err := readDescriptor(sessionPath)
	if err != nil {
		return "", err
	}

	idx := resolveFileRef(rec.Files, fileRef)
	if idx < 0 {
		return "", domain.ErrFileNotFoundInSession
	}
	rel := rec.Files[idx]

	full := filepath.Join(sessionPath, filepath.FromSlash(rel))
	if within(sessionPath, full) {
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	} else {
		logger.Warn("not removing %s: outside session", rel)
	}

	rec.Files = append(rec.Files[:idx], rec.Files[idx+1:]...)
	rec.LastModified = time.Now()
	if err := writeDescriptor(sessionPath, rec); err != nil {
		return "", err
	}
	return rel, nil
}

func resolveFileRef(files []string, ref string) int {
	for i, f := range files {
		if f == ref {
			return i
		}
	}
	base := path.Base(filepath.ToSlash(ref))
	for i, f := range files {
		if path.Base(f) == base {
			return i
		}
	}
	return -1
}
