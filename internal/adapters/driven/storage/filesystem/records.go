package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// sessionRecord is the on-disk form of session.json.
type sessionRecord struct {
	ID           int64     `json:"id"`
	UUID         string    `json:"uuid,omitempty"`
	Name         string    `json:"name"`
	Files        []string  `json:"files"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

func (r *sessionRecord) toDomain(dir string) *domain.Session {
	files := r.Files
	if files == nil {
		files = []string{}
	}
	return &domain.Session{
		ID:           r.ID,
		UUID:         r.UUID,
		Name:         r.Name,
		Files:        files,
		CreatedAt:    r.CreatedAt,
		LastModified: r.LastModified,
		FullPath:     dir,
	}
}

// cardRecord is the on-disk form of a flashcard.
type cardRecord struct {
	ID           int64      `json:"id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
}

// deckRecord is the on-disk form of data.json.
type deckRecord struct {
	ID           int64        `json:"id"`
	UUID         string       `json:"uuid,omitempty"`
	Name         string       `json:"name"`
	Cards        []cardRecord `json:"cards"`
	CreatedAt    time.Time    `json:"createdAt"`
	LastModified time.Time    `json:"lastModified"`
}

func newDeckRecord(d *domain.Deck) *deckRecord {
	cards := make([]cardRecord, 0, len(d.Cards))
	for i := range d.Cards {
		c := &d.Cards[i]
		cards = append(cards, cardRecord{
			ID:           c.ID,
			Question:     c.Question,
			Answer:       c.Answer,
			Status:       string(c.Status),
			CreatedAt:    c.CreatedAt,
			LastReviewed: c.LastReviewed,
		})
	}
	return &deckRecord{
		ID:           d.ID,
		UUID:         d.UUID,
		Name:         d.Name,
		Cards:        cards,
		CreatedAt:    d.CreatedAt,
		LastModified: d.LastModified,
	}
}

func (r *deckRecord) toDomain() domain.Deck {
	cards := make([]domain.Flashcard, 0, len(r.Cards))
	for _, c := range r.Cards {
		cards = append(cards, domain.Flashcard{
			ID:           c.ID,
			Question:     c.Question,
			Answer:       c.Answer,
			Status:       domain.NormalizeStatus(c.Status),
			CreatedAt:    c.CreatedAt,
			LastReviewed: c.LastReviewed,
		})
	}
	return domain.Deck{
		ID:           r.ID,
		UUID:         r.UUID,
		Name:         r.Name,
		Cards:        cards,
		CreatedAt:    r.CreatedAt,
		LastModified: r.LastModified,
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func descriptorPath(sessionPath string) string {
	return filepath.Join(sessionPath, domain.SessionDescriptorFile)
}

// readDescriptor loads session.json. A missing descriptor is reported as
// domain.ErrSessionNotFound.
func readDescriptor(sessionPath string) (*sessionRecord, error) {
	var rec sessionRecord
	if err := readJSON(descriptorPath(sessionPath), &rec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func writeDescriptor(sessionPath string, rec *sessionRecord) error {
	if rec.Files == nil {
		rec.Files = []string{}
	}
	return writeJSON(descriptorPath(sessionPath), rec)
}

// readRawDescriptor loads session.json as loosely typed fields so unknown
// keys survive a rewrite. A missing file yields an empty map.
func readRawDescriptor(sessionPath string) (map[string]json.RawMessage, bool, error) {
	fields := make(map[string]json.RawMessage)
	err := readJSON(descriptorPath(sessionPath), &fields)
	if errors.Is(err, os.ErrNotExist) {
		return fields, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

// touchDescriptor stamps lastModified if session.json exists.
func touchDescriptor(sessionPath string, now time.Time) error {
	fields, ok, err := readRawDescriptor(sessionPath)
	if err != nil || !ok {
		return err
	}
	stamp, err := json.Marshal(now)
	if err != nil {
		return err
	}
	fields["lastModified"] = stamp
	return writeJSON(descriptorPath(sessionPath), fields)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// findDirFold returns the entry of parent whose name equals name, falling
// back to a case-insensitive match.
func findDirFold(parent, name string) (string, bool) {
	exact := filepath.Join(parent, name)
	if dirExists(exact) {
		return exact, true
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(parent, e.Name()), true
		}
	}
	return "", false
}

// within reports whether target lies inside dir.
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
