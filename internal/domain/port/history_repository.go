package port

import (
	"context"

	"github.com/haxorport/postman-rewrite/internal/domain/model"
)

// HistoryRepository stores replacement run records
type HistoryRepository interface {
	// Create stores a run record
	Create(ctx context.Context, record *model.RunRecord) error

	// List returns the newest records first, at most limit of them
	List(ctx context.Context, limit int) ([]*model.RunRecord, error)

	// Close releases the underlying storage
	Close() error
}
