package driving

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// RecommendService suggests queries from a user's recent behaviour.
type RecommendService interface {
	// Suggest returns up to limit ready-to-run query suggestions.
	// New users with too little history get a generic starter set.
	Suggest(ctx context.Context, userID string, limit int) (*domain.Suggestions, error)
}
