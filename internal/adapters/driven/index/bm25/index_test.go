package bm25

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

func testCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:          "pm-1",
			Role:        "Product Manager",
			Industry:    "SaaS",
			CompanyName: "Acme",
			Remote:      true,
			Tools:       []string{"Trello", "Jira"},
			Skills:      []string{"Roadmapping", "Agile"},
			Description: "Ships software with cross-functional teams",
		},
		{
			ID:          "eng-1",
			Role:        "Software Engineer",
			Industry:    "Fintech",
			CompanyName: "Ledgerly",
			Remote:      false,
			Tools:       []string{"GitHub", "Docker"},
			Skills:      []string{"Go", "PostgreSQL"},
			Description: "Builds product integrations and billing pipelines",
		},
		{
			ID:          "ux-1",
			Role:        "UX Designer",
			Industry:    "Ecommerce",
			CompanyName: "Cartful",
			Remote:      true,
			Tools:       []string{"Figma", "Sketch"},
			Skills:      []string{"Prototyping", "Research"},
			Description: "Designs checkout flows",
		},
	}
}

func newTestIndex(t *testing.T, candidates []domain.Candidate) *Index {
	t.Helper()
	return NewIndex(candidates, 1.5, 0.75)
}

// TestTokenize tests lowercasing, splitting and stopword removal
func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "lowercases and splits on punctuation",
			text:     "Go-to market, the BEST plan",
			expected: []string{"go", "market", "best", "plan"},
		},
		{
			name:     "drops stopwords",
			text:     "a manager of the team",
			expected: []string{"manager", "team"},
		},
		{
			name:     "keeps digits",
			text:     "scaled to 50 reports",
			expected: []string{"scaled", "50", "reports"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text))
		})
	}
}

// TestIndex_Search_RoleWeighting tests that a role hit outranks a
// description hit for the same term
func TestIndex_Search_RoleWeighting(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	// "product" appears in pm-1's role (weighted) and once in eng-1's
	// description.
	hits, err := idx.Search(context.Background(), []string{"product", "manager"}, 10, domain.Filters{})
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "pm-1", hits[0].CandidateID)
	assert.Equal(t, "eng-1", hits[1].CandidateID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

// TestIndex_Search_ZeroOverlapExcluded tests that candidates sharing
// no terms with the query never appear
func TestIndex_Search_ZeroOverlapExcluded(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	hits, err := idx.Search(context.Background(), []string{"figma"}, 10, domain.Filters{})
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "ux-1", hits[0].CandidateID)
}

// TestIndex_Search_RemoteMarker tests that remote status is searchable
// as a term
func TestIndex_Search_RemoteMarker(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	hits, err := idx.Search(context.Background(), []string{"remote"}, 10, domain.Filters{})
	require.NoError(t, err)

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.CandidateID
	}
	assert.ElementsMatch(t, []string{"pm-1", "ux-1"}, ids)
}

// TestIndex_Search_StableTies tests that equal scores keep corpus
// insertion order
func TestIndex_Search_StableTies(t *testing.T) {
	twin := domain.Candidate{
		Role:        "Data Scientist",
		Industry:    "Analytics",
		CompanyName: "Numbersmith",
		Remote:      true,
		Tools:       []string{"Python"},
		Skills:      []string{"Statistics"},
		Description: "Builds forecasting models",
	}
	first, second := twin, twin
	first.ID = "ds-1"
	second.ID = "ds-2"

	idx := newTestIndex(t, []domain.Candidate{first, second})

	hits, err := idx.Search(context.Background(), []string{"data", "scientist"}, 10, domain.Filters{})
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "ds-1", hits[0].CandidateID)
	assert.Equal(t, "ds-2", hits[1].CandidateID)
	assert.InDelta(t, hits[0].Score, hits[1].Score, 1e-9)
}

// TestIndex_Search_FiltersAfterRanking tests that the predicate prunes
// ranked candidates without disturbing survivor order
func TestIndex_Search_FiltersAfterRanking(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	remote := false
	hits, err := idx.Search(context.Background(), []string{"product"}, 10, domain.Filters{Remote: &remote})
	require.NoError(t, err)

	// pm-1 ranks first on "product" but is remote, so only eng-1
	// survives the filter.
	require.Len(t, hits, 1)
	assert.Equal(t, "eng-1", hits[0].CandidateID)
}

// TestIndex_Search_Limit tests truncation after filtering
func TestIndex_Search_Limit(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	hits, err := idx.Search(context.Background(), []string{"product", "manager"}, 1, domain.Filters{})
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "pm-1", hits[0].CandidateID)
}

// TestIndex_Search_StopwordOnlyQuery tests that a query with nothing
// left after tokenization matches nothing
func TestIndex_Search_StopwordOnlyQuery(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	hits, err := idx.Search(context.Background(), []string{"the", "of"}, 10, domain.Filters{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

// TestIndex_Search_EmptyIndex tests searching a corpus of zero
// candidates
func TestIndex_Search_EmptyIndex(t *testing.T) {
	idx := newTestIndex(t, nil)

	hits, err := idx.Search(context.Background(), []string{"product"}, 10, domain.Filters{})
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, idx.Size())
}

// TestIndex_Search_CancelledContext tests that a dead context aborts
// the search
func TestIndex_Search_CancelledContext(t *testing.T) {
	idx := newTestIndex(t, testCandidates())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.Search(ctx, []string{"product"}, 10, domain.Filters{})
	assert.Error(t, err)
}

// TestIndex_Size tests the corpus size accessor
func TestIndex_Size(t *testing.T) {
	idx := newTestIndex(t, testCandidates())
	assert.Equal(t, 3, idx.Size())
}
