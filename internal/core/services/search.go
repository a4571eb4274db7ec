package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
	"github.com/talentbase-labs/scout-cli/internal/logger"
	"github.com/talentbase-labs/scout-cli/internal/query"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// maxLoggedResultIDs caps how many result ids a search record keeps.
const maxLoggedResultIDs = 10

// fusedHit holds one candidate after rank fusion, before hydration.
type fusedHit struct {
	candidateID  string
	score        float64
	lexicalRank  int
	semanticRank int
}

// SearchService locates and ranks candidates for free-text queries.
type SearchService struct {
	corpus      driven.CorpusProvider
	embedder    driven.EmbeddingService
	history     driven.HistoryStore
	interpreter *query.Interpreter
	expander    *query.Expander
	settings    domain.AppSettings
}

// NewSearchService creates a new search service. The history store is
// optional (can be nil); searches then run without being logged. Zero
// settings fields fall back to the application defaults.
func NewSearchService(
	corpus driven.CorpusProvider,
	embedder driven.EmbeddingService,
	history driven.HistoryStore,
	settings domain.AppSettings,
) *SearchService {
	defaults := domain.DefaultAppSettings()
	if settings.Search.Strategy == "" {
		settings.Search.Strategy = defaults.Search.Strategy
	}
	if settings.Search.TopK <= 0 {
		settings.Search.TopK = defaults.Search.TopK
	}
	if settings.Search.PageSize <= 0 {
		settings.Search.PageSize = defaults.Search.PageSize
	}
	if settings.Fusion.K <= 0 {
		settings.Fusion.K = defaults.Fusion.K
	}

	return &SearchService{
		corpus:      corpus,
		embedder:    embedder,
		history:     history,
		interpreter: query.NewInterpreter(),
		expander:    query.NewExpander(),
		settings:    settings,
	}
}

// Search interprets the query, runs the configured retrieval strategy
// and returns one page of explained, labelled results.
func (s *SearchService) Search(
	ctx context.Context, rawQuery string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", rawQuery)
	started := time.Now()

	if opts.Strategy != "" && !opts.Strategy.IsValid() {
		return nil, fmt.Errorf("%w: unknown retrieval strategy %q", domain.ErrInvalidInput, opts.Strategy)
	}
	opts = s.resolveOptions(opts)
	logger.Debug("Strategy: %s, top-k: %d, page: %d, limit: %d",
		opts.Strategy, opts.TopK, opts.Page, opts.Limit)

	// Return empty for empty query.
	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchResponse{
			Query:    trimmed,
			Results:  []domain.SearchResult{},
			Page:     opts.Page,
			Limit:    opts.Limit,
			Strategy: opts.Strategy,
			TookMS:   elapsedMS(started),
		}, nil
	}

	expanded, extracted := s.Interpret(trimmed)
	merged := extracted.Merge(opts.Filters)
	logger.Debug("Expanded query: %q", expanded.Expanded)

	// One snapshot serves both retrieval legs, so a corpus reload
	// mid-search can never make them rank different generations.
	snapshot := s.corpus.Snapshot()
	logger.Debug("Corpus snapshot: %d candidates", snapshot.Count)

	// Each leg fetches twice the pool so fusion still fills the pool
	// when the legs disagree.
	legLimit := opts.TopK * 2

	lexicalIDs, semanticIDs, err := s.retrieve(ctx, snapshot, expanded, merged, opts.Strategy, legLimit)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	fused := reciprocalRankFusion(lexicalIDs, semanticIDs, s.settings.Fusion.K)
	if len(fused) > opts.TopK {
		fused = fused[:opts.TopK]
	}
	logger.Debug("Fused pool: %d candidates", len(fused))

	results := s.hydrateResults(snapshot, fused, expanded.Terms, merged)
	totalCount := len(results)

	s.logSearch(ctx, opts, trimmed, merged, totalCount, results)

	pageResults, totalPages := paginate(results, opts.Page, opts.Limit)
	logger.Info("Final results: %d of %d (page %d/%d)", len(pageResults), totalCount, opts.Page, totalPages)

	return &domain.SearchResponse{
		Query:            trimmed,
		ExpandedQuery:    expanded.Expanded,
		Filters:          merged,
		ExtractedFilters: extracted,
		Results:          pageResults,
		Count:            len(pageResults),
		TotalCount:       totalCount,
		Page:             opts.Page,
		Limit:            opts.Limit,
		TotalPages:       totalPages,
		Strategy:         opts.Strategy,
		TookMS:           elapsedMS(started),
	}, nil
}

// Interpret extracts structured filters and the expanded query without
// running a search.
func (s *SearchService) Interpret(rawQuery string) (*domain.ExpandedQuery, domain.Filters) {
	trimmed := strings.TrimSpace(rawQuery)
	expanded := s.expander.Expand(trimmed)
	return &expanded, s.interpreter.Extract(trimmed)
}

// resolveOptions fills unset options from the configured defaults.
func (s *SearchService) resolveOptions(opts domain.SearchOptions) domain.SearchOptions {
	if opts.UserID == "" {
		opts.UserID = domain.DefaultUserID
	}
	if opts.Strategy == "" {
		opts.Strategy = s.settings.Search.Strategy
	}
	if opts.TopK <= 0 {
		opts.TopK = s.settings.Search.TopK
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = s.settings.Search.PageSize
	}
	return opts
}

// retrieve runs the retrieval legs for the strategy and returns the
// ranked candidate ids of each leg, best first. This switch is the only
// place that dispatches on the strategy. Either leg failing fails the
// whole retrieval; there is no single-signal fallback.
func (s *SearchService) retrieve(
	ctx context.Context,
	snapshot driven.CorpusSnapshot,
	expanded *domain.ExpandedQuery,
	filters domain.Filters,
	strategy domain.RetrievalStrategy,
	limit int,
) (lexicalIDs, semanticIDs []string, err error) {
	switch strategy {
	case domain.StrategyLexical:
		logger.Debug("Executing lexical retrieval")
		lexicalIDs, err = s.lexicalLeg(ctx, snapshot, expanded.Terms, filters, limit)
		return lexicalIDs, nil, err

	case domain.StrategySemantic:
		logger.Debug("Executing semantic retrieval")
		semanticIDs, err = s.semanticLeg(ctx, snapshot, expanded.Expanded, filters, limit)
		return nil, semanticIDs, err

	case domain.StrategyHybrid:
		logger.Debug("Executing hybrid retrieval (lexical + semantic)")
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			ids, legErr := s.lexicalLeg(gctx, snapshot, expanded.Terms, filters, limit)
			if legErr != nil {
				return legErr
			}
			lexicalIDs = ids
			return nil
		})
		g.Go(func() error {
			ids, legErr := s.semanticLeg(gctx, snapshot, expanded.Expanded, filters, limit)
			if legErr != nil {
				return legErr
			}
			semanticIDs = ids
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		return lexicalIDs, semanticIDs, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown retrieval strategy %q", domain.ErrInvalidInput, strategy)
	}
}

// lexicalLeg runs the keyword ranking over the snapshot.
func (s *SearchService) lexicalLeg(
	ctx context.Context,
	snapshot driven.CorpusSnapshot,
	terms []string,
	filters domain.Filters,
	limit int,
) ([]string, error) {
	if snapshot.Lexical == nil {
		logger.Warn("Lexical retrieval unavailable: index is nil")
		return nil, domain.ErrIndexUnavailable
	}

	hits, err := snapshot.Lexical.Search(ctx, terms, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("keyword retrieval: %w", err)
	}
	logger.Debug("Lexical leg: %d hits", len(hits))

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.CandidateID
	}
	return ids, nil
}

// semanticLeg embeds the expanded query and runs the similarity
// ranking over the snapshot.
func (s *SearchService) semanticLeg(
	ctx context.Context,
	snapshot driven.CorpusSnapshot,
	text string,
	filters domain.Filters,
	limit int,
) ([]string, error) {
	if s.embedder == nil {
		logger.Warn("Semantic retrieval unavailable: embedding service is nil")
		return nil, domain.ErrEmbeddingUnavailable
	}
	if snapshot.Vector == nil {
		logger.Warn("Semantic retrieval unavailable: vector index is nil")
		return nil, domain.ErrVectorIndexUnavailable
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := snapshot.Vector.Search(ctx, vector, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("similarity retrieval: %w", err)
	}
	logger.Debug("Semantic leg: %d hits", len(hits))

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.CandidateID
	}
	return ids, nil
}

// reciprocalRankFusion merges two rankings with RRF: each candidate
// scores the sum of 1/(k+rank) over the lists it appears in, ranks
// 1-based. Equal scores keep first-encounter order (the lexical list
// before semantic-only ids), so the fused order is deterministic for a
// given pair of rankings.
func reciprocalRankFusion(lexical, semantic []string, k int) []fusedHit {
	order := make([]string, 0, len(lexical)+len(semantic))
	byID := make(map[string]*fusedHit, len(lexical)+len(semantic))

	hitFor := func(id string) *fusedHit {
		if hit, ok := byID[id]; ok {
			return hit
		}
		hit := &fusedHit{candidateID: id}
		byID[id] = hit
		order = append(order, id)
		return hit
	}

	for i, id := range lexical {
		hit := hitFor(id)
		hit.lexicalRank = i + 1
		hit.score += 1.0 / float64(k+i+1)
	}
	for i, id := range semantic {
		hit := hitFor(id)
		hit.semanticRank = i + 1
		hit.score += 1.0 / float64(k+i+1)
	}

	fused := make([]fusedHit, len(order))
	for i, id := range order {
		fused[i] = *byID[id]
	}
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].score > fused[j].score
	})
	return fused
}

// hydrateResults joins fused hits with full candidate records and
// attaches ranks, reasons and labels.
func (s *SearchService) hydrateResults(
	snapshot driven.CorpusSnapshot,
	fused []fusedHit,
	terms []string,
	filters domain.Filters,
) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(fused))
	for _, hit := range fused {
		candidate := snapshot.Candidate(hit.candidateID)
		if candidate == nil {
			logger.Warn("Candidate not found in snapshot: %s", hit.candidateID)
			continue
		}
		results = append(results, domain.SearchResult{
			Candidate:    *candidate,
			LexicalRank:  hit.lexicalRank,
			SemanticRank: hit.semanticRank,
			Score:        hit.score,
			Rank:         len(results) + 1,
			Reasons:      matchReasons(candidate, terms, filters),
			Label:        domain.LabelForScore(hit.score),
		})
	}
	return results
}

// logSearch appends the search to the user's history. History write
// failures never fail the search itself.
func (s *SearchService) logSearch(
	ctx context.Context,
	opts domain.SearchOptions,
	queryText string,
	filters domain.Filters,
	resultCount int,
	results []domain.SearchResult,
) {
	if s.history == nil {
		return
	}

	topIDs := make([]string, 0, maxLoggedResultIDs)
	for _, result := range results {
		if len(topIDs) == maxLoggedResultIDs {
			break
		}
		topIDs = append(topIDs, result.Candidate.ID)
	}

	record := &domain.SearchRecord{
		ID:           uuid.New().String(),
		UserID:       opts.UserID,
		Query:        queryText,
		Filters:      filters,
		Strategy:     opts.Strategy,
		ResultCount:  resultCount,
		TopResultIDs: topIDs,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.history.LogSearch(ctx, record); err != nil {
		logger.Warn("Logging search failed: %v", err)
	}
}

// paginate slices one page out of the full pool and returns it with
// the total page count.
func paginate(results []domain.SearchResult, page, limit int) ([]domain.SearchResult, int) {
	totalPages := 0
	if len(results) > 0 {
		totalPages = (len(results) + limit - 1) / limit
	}

	start := (page - 1) * limit
	if start >= len(results) {
		return []domain.SearchResult{}, totalPages
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end], totalPages
}

func elapsedMS(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}
