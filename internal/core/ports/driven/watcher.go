package driven

import (
	"context"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// StorageWatcher reports changes below the root directory.
type StorageWatcher interface {
	// Watch starts watching root. Events stop and the channel closes when
	// ctx is cancelled.
	Watch(ctx context.Context, root string) (<-chan domain.StorageEvent, error)
}
