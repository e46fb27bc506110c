// Package archive provides the zip-based backup archiver.
//
// An archive holds the root directory under sprout_data/ and the exported
// settings as settings.json at the archive root.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sprout-cli/internal/logger"
)

// Ensure Zip implements the interface.
var _ driven.Archiver = (*Zip)(nil)

const dataPrefix = domain.BackupDataDir + "/"

// Zip reads and writes backup archives in zip format.
type Zip struct{}

// New creates a new zip archiver.
func New() *Zip {
	return &Zip{}
}

// Create archives root and settings into dest. dest must not lie inside root.
func (z *Zip) Create(ctx context.Context, root, dest string, settings []byte) (int, error) {
	if inside(root, dest) {
		return 0, fmt.Errorf("%w: backup destination is inside the data directory", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	zw := zip.NewWriter(out)

	count, err := z.addTree(ctx, zw, root)
	if err == nil && settings != nil {
		err = writeEntry(zw, domain.SettingsFileName, settings)
	}
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return 0, err
	}
	return count, nil
}

func (z *Zip) addTree(ctx context.Context, zw *zip.Writer, root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == root {
				return fs.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := path.Join(domain.BackupDataDir, filepath.ToSlash(rel))
		if d.IsDir() {
			_, err := zw.Create(name + "/")
			return err
		}
		if !d.Type().IsRegular() {
			logger.Debug("backup: skipping %s", rel)
			return nil
		}
		if err := addFile(zw, p, name); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func addFile(zw *zip.Writer, src, name string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Restore replaces root with the archive's data subtree. The archive is
// opened and its entry names checked before root is removed. An archive
// without a data subtree still leaves root empty.
func (z *Zip) Restore(ctx context.Context, archivePath, root string) ([]byte, int, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, 0, fmt.Errorf("open backup: %w", err)
	}
	defer zr.Close()

	var settings []byte
	var entries []*zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == domain.SettingsFileName:
			if settings, err = readEntry(f); err != nil {
				return nil, 0, fmt.Errorf("read settings: %w", err)
			}
		case strings.HasPrefix(f.Name, dataPrefix):
			if !safeEntry(strings.TrimPrefix(f.Name, dataPrefix)) {
				return nil, 0, fmt.Errorf("%w: unsafe archive entry %q", domain.ErrInvalidInput, f.Name)
			}
			entries = append(entries, f)
		}
	}
	if len(entries) == 0 {
		logger.Warn("backup %s has no %s entries", filepath.Base(archivePath), domain.BackupDataDir)
	}

	if err := os.RemoveAll(root); err != nil {
		return nil, 0, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, 0, z.partial(err)
	}

	count := 0
	for _, f := range entries {
		if err := ctx.Err(); err != nil {
			return nil, count, z.partial(err)
		}
		extracted, err := extract(f, root)
		if err != nil {
			return nil, count, z.partial(err)
		}
		if extracted {
			count++
		}
	}
	return settings, count, nil
}

func (z *Zip) partial(err error) error {
	return &domain.PartialFailureError{
		Op:        "restore backup",
		Completed: []string{"remove existing data"},
		Pending:   []string{"extract archive"},
		Err:       err,
	}
}

func extract(f *zip.File, root string) (bool, error) {
	rel := strings.TrimPrefix(f.Name, dataPrefix)
	target := filepath.Join(root, filepath.FromSlash(rel))
	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		return false, os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return false, err
	}

	in, err := f.Open()
	if err != nil {
		return false, err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return false, err
	}
	return true, out.Close()
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// safeEntry rejects names that would escape the extraction root.
func safeEntry(rel string) bool {
	if rel == "" {
		return true
	}
	if strings.HasPrefix(rel, "/") || strings.Contains(rel, `\`) {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

func inside(root, target string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
