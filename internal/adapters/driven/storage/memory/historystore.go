package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
	"github.com/custodia-labs/sprout-cli/internal/core/ports/driven"
)

// Ensure ImportHistoryStore implements the interface.
var _ driven.ImportHistoryStore = (*ImportHistoryStore)(nil)

// ImportHistoryStore is an in-memory implementation of driven.ImportHistoryStore.
type ImportHistoryStore struct {
	mu      sync.RWMutex
	records []domain.ImportRecord
}

// NewImportHistoryStore creates a new in-memory history store.
func NewImportHistoryStore() *ImportHistoryStore {
	return &ImportHistoryStore{}
}

// Record appends an entry.
func (s *ImportHistoryStore) Record(_ context.Context, rec domain.ImportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns entries newest first.
func (s *ImportHistoryStore) List(_ context.Context, limit int) ([]domain.ImportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := append([]domain.ImportRecord(nil), s.records...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
