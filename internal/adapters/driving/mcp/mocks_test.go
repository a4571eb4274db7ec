package mcp

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	gotQuery string
	gotOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.gotQuery = query
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: query}, nil
	}
	return m.response, nil
}

func (m *mockSearchService) Interpret(query string) (*domain.ExpandedQuery, domain.Filters) {
	return &domain.ExpandedQuery{Original: query}, domain.Filters{}
}

// mockCandidateService is a mock implementation of driving.CandidateService.
type mockCandidateService struct {
	candidate *domain.Candidate
	saved     []driving.SavedView
	err       error

	gotUserID      string
	gotCandidateID string
	gotNotes       string
	gotTags        []string
}

func (m *mockCandidateService) Get(_ context.Context, id string) (*domain.Candidate, error) {
	m.gotCandidateID = id
	return m.candidate, m.err
}

func (m *mockCandidateService) Count(_ context.Context) (int, error) {
	return len(m.saved), m.err
}

func (m *mockCandidateService) Save(_ context.Context, userID, candidateID, notes string, tags []string) error {
	m.gotUserID = userID
	m.gotCandidateID = candidateID
	m.gotNotes = notes
	m.gotTags = tags
	return m.err
}

func (m *mockCandidateService) Unsave(_ context.Context, userID, candidateID string) error {
	m.gotUserID = userID
	m.gotCandidateID = candidateID
	return m.err
}

func (m *mockCandidateService) Saved(_ context.Context, userID string) ([]driving.SavedView, error) {
	m.gotUserID = userID
	return m.saved, m.err
}

func (m *mockCandidateService) LoadCorpus(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

func (m *mockCandidateService) Reindex(_ context.Context) error {
	return m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	page  *domain.SearchHistoryPage
	stats *domain.SearchStats
	err   error
}

func (m *mockHistoryService) List(_ context.Context, _ string, _, _ int) (*domain.SearchHistoryPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.SearchHistoryPage{}, nil
	}
	return m.page, nil
}

func (m *mockHistoryService) Delete(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockHistoryService) Clear(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

func (m *mockHistoryService) Stats(_ context.Context, _ string) (*domain.SearchStats, error) {
	return m.stats, m.err
}

// mockRecommendService is a mock implementation of driving.RecommendService.
type mockRecommendService struct {
	suggestions *domain.Suggestions
	err         error
}

func (m *mockRecommendService) Suggest(_ context.Context, _ string, _ int) (*domain.Suggestions, error) {
	return m.suggestions, m.err
}
