package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driven/storage/memory"
	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLexicalIndex implements driven.LexicalIndex for testing.
type mockLexicalIndex struct {
	hits      []driven.LexicalHit
	searchErr error
	gotTerms  []string
	gotLimit  int
}

func (m *mockLexicalIndex) Search(_ context.Context, terms []string, limit int, _ domain.Filters) ([]driven.LexicalHit, error) {
	m.gotTerms = terms
	m.gotLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:limit], nil
}

func (m *mockLexicalIndex) Size() int {
	return len(m.hits)
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits      []driven.VectorHit
	searchErr error
	gotK      int
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int, _ domain.Filters) ([]driven.VectorHit, error) {
	m.gotK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Size() int {
	return len(m.hits)
}

func (m *mockVectorIndex) Dimensions() int {
	return 384
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	dims      int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 384
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockCorpusProvider implements driven.CorpusProvider for testing.
type mockCorpusProvider struct {
	snapshot   driven.CorpusSnapshot
	refreshErr error
	refreshed  int
}

func (m *mockCorpusProvider) Snapshot() driven.CorpusSnapshot {
	return m.snapshot
}

func (m *mockCorpusProvider) Refresh(_ context.Context) error {
	if m.refreshErr != nil {
		return m.refreshErr
	}
	m.refreshed++
	return nil
}

// failingHistoryStore fails every search write.
type failingHistoryStore struct {
	*memory.HistoryStore
}

func (f *failingHistoryStore) LogSearch(_ context.Context, _ *domain.SearchRecord) error {
	return errors.New("disk full")
}

// --- Test helpers ---

func testCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:              "cand-1",
			Name:            "Maria Novak",
			Role:            "Product Manager",
			Industry:        "Healthcare",
			CompanyName:     "Acme Health",
			CompanySize:     "50-200",
			Remote:          true,
			TeamSize:        5,
			ExperienceYears: 8,
			Tools:           []string{"Trello", "Figma", "Jira"},
			Skills:          []string{"Roadmapping", "Agile"},
			Location:        "Berlin",
		},
		{
			ID:              "cand-2",
			Name:            "Jon Price",
			Role:            "UX Designer",
			Industry:        "Fintech",
			CompanyName:     "Brightpay",
			CompanySize:     "10-50",
			ExperienceYears: 4,
			Tools:           []string{"Figma", "Sketch"},
			Skills:          []string{"Prototyping"},
		},
		{
			ID:              "cand-3",
			Name:            "Ana Silva",
			Role:            "Software Engineer",
			Industry:        "E-commerce",
			CompanySize:     "1000+",
			Remote:          true,
			ExperienceYears: 6,
			Tools:           []string{"GitHub", "Docker"},
			Skills:          []string{"Go", "Kubernetes"},
		},
	}
}

func testSnapshot(lexical driven.LexicalIndex, vector driven.VectorIndex) driven.CorpusSnapshot {
	candidates := testCandidates()
	byID := make(map[string]*domain.Candidate, len(candidates))
	for i := range candidates {
		byID[candidates[i].ID] = &candidates[i]
	}
	return driven.CorpusSnapshot{
		Lexical:    lexical,
		Vector:     vector,
		Candidates: byID,
		Count:      len(candidates),
	}
}

func createLexicalHits() []driven.LexicalHit {
	return []driven.LexicalHit{
		{CandidateID: "cand-1", Score: 4.2},
		{CandidateID: "cand-2", Score: 2.8},
		{CandidateID: "cand-3", Score: 1.1},
	}
}

func createVectorHits() []driven.VectorHit {
	return []driven.VectorHit{
		{CandidateID: "cand-2", Similarity: 0.92},
		{CandidateID: "cand-1", Similarity: 0.85},
		{CandidateID: "cand-3", Similarity: 0.71},
	}
}

func setupSearchService(t *testing.T, lexical driven.LexicalIndex, vector driven.VectorIndex, embedder driven.EmbeddingService) (*SearchService, *memory.HistoryStore) {
	t.Helper()
	history := memory.NewHistoryStore()
	provider := &mockCorpusProvider{snapshot: testSnapshot(lexical, vector)}
	service := NewSearchService(provider, embedder, history, domain.AppSettings{})
	return service, history
}

// --- Tests ---

func TestNewSearchService(t *testing.T) {
	provider := &mockCorpusProvider{}
	service := NewSearchService(provider, nil, nil, domain.AppSettings{})

	require.NotNil(t, service)
	assert.Equal(t, domain.StrategyHybrid, service.settings.Search.Strategy)
	assert.Equal(t, 50, service.settings.Search.TopK)
	assert.Equal(t, 20, service.settings.Search.PageSize)
	assert.Equal(t, 60, service.settings.Fusion.K)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	service, _ := setupSearchService(t, &mockLexicalIndex{}, &mockVectorIndex{}, &mockEmbeddingService{})
	ctx := context.Background()

	resp, err := service.Search(ctx, "", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, domain.StrategyHybrid, resp.Strategy)
}

func TestSearchService_Search_WhitespaceQuery(t *testing.T) {
	service, _ := setupSearchService(t, &mockLexicalIndex{}, &mockVectorIndex{}, &mockEmbeddingService{})
	ctx := context.Background()

	resp, err := service.Search(ctx, "   \t\n  ", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchService_Search_InvalidStrategy(t *testing.T) {
	service, _ := setupSearchService(t, &mockLexicalIndex{}, &mockVectorIndex{}, &mockEmbeddingService{})
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{Strategy: "psychic"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_Search_Hybrid(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	// cand-1 and cand-2 tie on fused score (ranks 1+2 vs 2+1); the tie
	// keeps lexical-first encounter order.
	assert.Equal(t, "cand-1", resp.Results[0].Candidate.ID)
	assert.Equal(t, "cand-2", resp.Results[1].Candidate.ID)
	assert.Equal(t, "cand-3", resp.Results[2].Candidate.ID)

	first := resp.Results[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, 1, first.LexicalRank)
	assert.Equal(t, 2, first.SemanticRank)
	assert.InDelta(t, 1.0/61+1.0/62, first.Score, 1e-9)
	assert.Equal(t, domain.LabelExcellent, first.Label)
	assert.Equal(t, domain.StrategyHybrid, resp.Strategy)
}

func TestSearchService_Search_LexicalOnly(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	service, _ := setupSearchService(t, lexical, nil, nil)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{
		Strategy: domain.StrategyLexical,
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	for _, result := range resp.Results {
		assert.NotZero(t, result.LexicalRank)
		assert.Zero(t, result.SemanticRank)
	}
	assert.Equal(t, domain.StrategyLexical, resp.Strategy)
}

func TestSearchService_Search_SemanticOnly(t *testing.T) {
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, nil, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "people like my best hire", domain.SearchOptions{
		Strategy: domain.StrategySemantic,
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "cand-2", resp.Results[0].Candidate.ID)
	for _, result := range resp.Results {
		assert.Zero(t, result.LexicalRank)
		assert.NotZero(t, result.SemanticRank)
	}
}

func TestSearchService_Search_LegFetchesDoublePool(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{TopK: 10})

	require.NoError(t, err)
	assert.Equal(t, 20, lexical.gotLimit)
	assert.Equal(t, 20, vector.gotK)
}

func TestSearchService_Search_TopKTruncatesPool(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{TopK: 2})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Len(t, resp.Results, 2)
}

func TestSearchService_Search_LexicalLegFailureFailsHybrid(t *testing.T) {
	lexical := &mockLexicalIndex{searchErr: errors.New("index corrupted")}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.Contains(t, err.Error(), "index corrupted")
}

func TestSearchService_Search_EmbedFailureFailsHybrid(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedErr: errors.New("provider down")}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
}

func TestSearchService_Search_NilEmbedder(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	service, _ := setupSearchService(t, lexical, vector, nil)
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestSearchService_Search_NilLexicalIndex(t *testing.T) {
	service, _ := setupSearchService(t, nil, &mockVectorIndex{}, &mockEmbeddingService{})
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{
		Strategy: domain.StrategyLexical,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSearchFailed)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestSearchService_Search_Pagination(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.Page)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "cand-3", resp.Results[0].Candidate.ID)
	assert.Equal(t, 1, resp.Count)
}

func TestSearchService_Search_PageBeyondEnd(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{Page: 9, Limit: 2})

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestSearchService_Search_FilterOverrides(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "remote designer", domain.SearchOptions{
		Filters: domain.Filters{Role: "Product Manager"},
	})

	require.NoError(t, err)
	assert.Equal(t, "UX Designer", resp.ExtractedFilters.Role)
	require.NotNil(t, resp.ExtractedFilters.Remote)
	assert.True(t, *resp.ExtractedFilters.Remote)
	// The explicit role wins; the extracted remote flag survives.
	assert.Equal(t, "Product Manager", resp.Filters.Role)
	require.NotNil(t, resp.Filters.Remote)
	assert.True(t, *resp.Filters.Remote)
}

func TestSearchService_Search_ResultsExplained(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	first := resp.Results[0]
	require.NotEmpty(t, first.Reasons)
	assert.Equal(t, "Role: Product Manager", first.Reasons[0])
	assert.LessOrEqual(t, len(first.Reasons), 5)
	assert.True(t, first.Label.IsValid())
}

func TestSearchService_Search_LogsHistory(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, history := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	_, err := service.Search(ctx, "product manager", domain.SearchOptions{})
	require.NoError(t, err)

	records, total, err := history.ListSearches(ctx, domain.DefaultUserID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	record := records[0]
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "product manager", record.Query)
	assert.Equal(t, domain.StrategyHybrid, record.Strategy)
	assert.Equal(t, 3, record.ResultCount)
	assert.Equal(t, []string{"cand-1", "cand-2", "cand-3"}, record.TopResultIDs)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestSearchService_Search_EmptyQueryNotLogged(t *testing.T) {
	service, history := setupSearchService(t, &mockLexicalIndex{}, &mockVectorIndex{}, &mockEmbeddingService{})
	ctx := context.Background()

	_, err := service.Search(ctx, "", domain.SearchOptions{})
	require.NoError(t, err)

	_, total, err := history.ListSearches(ctx, domain.DefaultUserID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSearchService_Search_HistoryFailureDoesNotFailSearch(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	provider := &mockCorpusProvider{snapshot: testSnapshot(lexical, vector)}
	history := &failingHistoryStore{HistoryStore: memory.NewHistoryStore()}
	service := NewSearchService(provider, embedder, history, domain.AppSettings{})
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 3)
}

func TestSearchService_Search_NilHistoryStore(t *testing.T) {
	lexical := &mockLexicalIndex{hits: createLexicalHits()}
	vector := &mockVectorIndex{hits: createVectorHits()}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	provider := &mockCorpusProvider{snapshot: testSnapshot(lexical, vector)}
	service := NewSearchService(provider, embedder, nil, domain.AppSettings{})
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 3)
}

func TestSearchService_Search_SkipsUnknownSnapshotIDs(t *testing.T) {
	lexical := &mockLexicalIndex{hits: []driven.LexicalHit{
		{CandidateID: "cand-1", Score: 3.0},
		{CandidateID: "ghost", Score: 2.0},
	}}
	vector := &mockVectorIndex{}
	embedder := &mockEmbeddingService{embedding: make([]float32, 384)}
	service, _ := setupSearchService(t, lexical, vector, embedder)
	ctx := context.Background()

	resp, err := service.Search(ctx, "product manager", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "cand-1", resp.Results[0].Candidate.ID)
	assert.Equal(t, 1, resp.Results[0].Rank)
}

func TestSearchService_Interpret(t *testing.T) {
	service, _ := setupSearchService(t, &mockLexicalIndex{}, &mockVectorIndex{}, &mockEmbeddingService{})

	expanded, filters := service.Interpret("  sr pm, remote ")

	assert.Equal(t, "sr senior pm product manager remote", expanded.Expanded)
	assert.Contains(t, expanded.Terms, "senior")
	assert.Contains(t, expanded.Terms, "manager")
	assert.Equal(t, "Product Manager", filters.Role)
	require.NotNil(t, filters.Remote)
	assert.True(t, *filters.Remote)
}

// --- Fusion and pagination unit tests ---

func TestReciprocalRankFusion_Overlap(t *testing.T) {
	fused := reciprocalRankFusion(
		[]string{"a", "b", "c"},
		[]string{"b", "d"},
		60,
	)

	require.Len(t, fused, 4)
	// b appears in both lists (ranks 2 and 1) and beats a's single
	// first place.
	assert.Equal(t, "b", fused[0].candidateID)
	assert.InDelta(t, 1.0/62+1.0/61, fused[0].score, 1e-9)
	assert.Equal(t, 2, fused[0].lexicalRank)
	assert.Equal(t, 1, fused[0].semanticRank)

	assert.Equal(t, "a", fused[1].candidateID)
	assert.InDelta(t, 1.0/61, fused[1].score, 1e-9)
}

func TestReciprocalRankFusion_TieKeepsLexicalFirst(t *testing.T) {
	// a and b swap ranks across the lists: identical fused scores.
	fused := reciprocalRankFusion(
		[]string{"a", "b"},
		[]string{"b", "a"},
		60,
	)

	require.Len(t, fused, 2)
	assert.Equal(t, "a", fused[0].candidateID)
	assert.Equal(t, "b", fused[1].candidateID)
	assert.InDelta(t, fused[0].score, fused[1].score, 1e-12)
}

func TestReciprocalRankFusion_SingleList(t *testing.T) {
	fused := reciprocalRankFusion([]string{"a", "b"}, nil, 60)

	require.Len(t, fused, 2)
	assert.Equal(t, "a", fused[0].candidateID)
	assert.Equal(t, 1, fused[0].lexicalRank)
	assert.Zero(t, fused[0].semanticRank)
}

func TestReciprocalRankFusion_Empty(t *testing.T) {
	fused := reciprocalRankFusion(nil, nil, 60)

	assert.Empty(t, fused)
}

func TestPaginate(t *testing.T) {
	results := make([]domain.SearchResult, 5)

	page, totalPages := paginate(results, 1, 2)
	assert.Len(t, page, 2)
	assert.Equal(t, 3, totalPages)

	page, _ = paginate(results, 3, 2)
	assert.Len(t, page, 1)

	page, totalPages = paginate(results, 4, 2)
	assert.Empty(t, page)
	assert.Equal(t, 3, totalPages)

	page, totalPages = paginate(nil, 1, 2)
	assert.Empty(t, page)
	assert.Zero(t, totalPages)
}
