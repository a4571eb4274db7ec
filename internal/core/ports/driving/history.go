package driving

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// HistoryService manages search history and usage analytics.
type HistoryService interface {
	// List returns one page of the user's search records, newest
	// first.
	List(ctx context.Context, userID string, page, limit int) (*domain.SearchHistoryPage, error)

	// Delete removes a single search record.
	Delete(ctx context.Context, userID, recordID string) error

	// Clear removes all of the user's search records and returns how
	// many were removed.
	Clear(ctx context.Context, userID string) (int, error)

	// Stats aggregates the user's search activity.
	Stats(ctx context.Context, userID string) (*domain.SearchStats, error)
}
