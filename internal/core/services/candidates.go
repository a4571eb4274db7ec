package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
	"github.com/talentbase-labs/scout-cli/internal/corpus"
	"github.com/talentbase-labs/scout-cli/internal/logger"
)

// Ensure CandidateService implements the interface.
var _ driving.CandidateService = (*CandidateService)(nil)

// CandidateService manages the candidate corpus and saved candidates.
type CandidateService struct {
	store    driven.CandidateStore
	history  driven.HistoryStore
	provider driven.CorpusProvider
	embedder driven.EmbeddingService
}

// NewCandidateService creates a new candidate service. The embedder is
// optional (can be nil); loaded candidates without stored vectors then
// stay invisible to semantic retrieval.
func NewCandidateService(
	store driven.CandidateStore,
	history driven.HistoryStore,
	provider driven.CorpusProvider,
	embedder driven.EmbeddingService,
) *CandidateService {
	return &CandidateService{
		store:    store,
		history:  history,
		provider: provider,
		embedder: embedder,
	}
}

// Get retrieves a candidate by ID.
func (s *CandidateService) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	candidate, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return candidate, nil
}

// Count returns the corpus size.
func (s *CandidateService) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return count, nil
}

// Save marks a candidate as saved for the user. Saving an
// already-saved candidate updates notes and tags.
func (s *CandidateService) Save(ctx context.Context, userID, candidateID, notes string, tags []string) error {
	if userID == "" {
		userID = domain.DefaultUserID
	}

	if _, err := s.store.Get(ctx, candidateID); err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}

	saved := &domain.SavedCandidate{
		UserID:      userID,
		CandidateID: candidateID,
		Notes:       notes,
		Tags:        tags,
		SavedAt:     time.Now().UTC(),
	}
	if err := s.history.SaveCandidate(ctx, saved); err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}
	logger.Debug("Saved candidate %s for %s", candidateID, userID)
	return nil
}

// Unsave removes a saved-candidate mark.
func (s *CandidateService) Unsave(ctx context.Context, userID, candidateID string) error {
	if userID == "" {
		userID = domain.DefaultUserID
	}
	if err := s.history.UnsaveCandidate(ctx, userID, candidateID); err != nil {
		return fmt.Errorf("unsave candidate: %w", err)
	}
	logger.Debug("Unsaved candidate %s for %s", candidateID, userID)
	return nil
}

// Saved returns the user's saved candidates with full records, newest
// first. Saved rows whose candidate left the corpus are skipped.
func (s *CandidateService) Saved(ctx context.Context, userID string) ([]driving.SavedView, error) {
	if userID == "" {
		userID = domain.DefaultUserID
	}

	rows, err := s.history.SavedCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved candidates: %w", err)
	}

	views := make([]driving.SavedView, 0, len(rows))
	for _, row := range rows {
		candidate, err := s.store.Get(ctx, row.CandidateID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load saved candidate: %w", err)
		}
		views = append(views, driving.SavedView{Candidate: *candidate, Saved: row})
	}
	return views, nil
}

// LoadCorpus replaces the corpus from a JSON file, embeds candidates
// that arrived without vectors and rebuilds the indexes. Returns how
// many candidates were loaded.
func (s *CandidateService) LoadCorpus(ctx context.Context, path string) (int, error) {
	logger.Section("Corpus Load")
	logger.Info("Loading corpus from %s", path)

	candidates, err := corpus.LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load corpus: %w", err)
	}
	logger.Debug("Parsed %d candidates", len(candidates))

	if err := s.ensureEmbeddings(ctx, candidates); err != nil {
		return 0, fmt.Errorf("embed candidates: %w", err)
	}

	if err := s.store.ReplaceAll(ctx, candidates); err != nil {
		return 0, fmt.Errorf("store corpus: %w", err)
	}

	if err := s.provider.Refresh(ctx); err != nil {
		return 0, fmt.Errorf("rebuild indexes: %w", err)
	}

	logger.Info("Corpus loaded: %d candidates", len(candidates))
	return len(candidates), nil
}

// Reindex rebuilds the indexes from the stored corpus without
// reloading it.
func (s *CandidateService) Reindex(ctx context.Context) error {
	logger.Debug("Rebuilding indexes from stored corpus")
	if err := s.provider.Refresh(ctx); err != nil {
		return fmt.Errorf("rebuild indexes: %w", err)
	}
	return nil
}

// ensureEmbeddings fills in vectors for candidates that arrived
// without one, in a single batch.
func (s *CandidateService) ensureEmbeddings(ctx context.Context, candidates []domain.Candidate) error {
	var missing []int
	for i := range candidates {
		if len(candidates[i].Embedding) == 0 {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if s.embedder == nil {
		logger.Warn("No embedding service; %d candidates stay without vectors", len(missing))
		return nil
	}
	logger.Debug("Embedding %d candidates without vectors", len(missing))

	texts := make([]string, len(missing))
	for i, idx := range missing {
		texts[i] = embeddingText(&candidates[idx])
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(missing) {
		return fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vectors), len(missing))
	}
	for i, idx := range missing {
		candidates[idx].Embedding = vectors[i]
	}
	return nil
}

// embeddingText is the text a candidate's vector is derived from.
func embeddingText(c *domain.Candidate) string {
	if c.Description != "" {
		return c.Description
	}
	return strings.TrimSpace(c.Role + " " + c.Industry)
}
