package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// SearchCandidatesInput is the input schema for the search_candidates tool.
type SearchCandidatesInput struct {
	Query         string   `json:"query" jsonschema:"free-text description of the candidates to find"`
	Limit         int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Strategy      string   `json:"strategy,omitempty" jsonschema:"retrieval strategy: hybrid, lexical or semantic (default hybrid)"`
	Role          string   `json:"role,omitempty" jsonschema:"required role, overrides any role found in the query"`
	Remote        *bool    `json:"remote,omitempty" jsonschema:"require remote (true) or on-site (false) candidates"`
	Tools         []string `json:"tools,omitempty" jsonschema:"tools every matching candidate must use"`
	MinExperience *int     `json:"min_experience,omitempty" jsonschema:"minimum years of experience"`
	MaxExperience *int     `json:"max_experience,omitempty" jsonschema:"maximum years of experience"`
}

// SearchCandidatesOutput is the output schema for the search_candidates tool.
type SearchCandidatesOutput struct {
	Results    []CandidateResultOutput `json:"results"`
	Count      int                     `json:"count"`
	TotalCount int                     `json:"total_count"`
	Strategy   string                  `json:"strategy"`
}

// CandidateResultOutput represents a single ranked candidate.
type CandidateResultOutput struct {
	CandidateID string   `json:"candidate_id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Company     string   `json:"company,omitempty"`
	Rank        int      `json:"rank"`
	Score       float64  `json:"score"`
	Label       string   `json:"label"`
	Reasons     []string `json:"reasons,omitempty"`
}

// SuggestQueriesInput is the input schema for the suggest_queries tool.
type SuggestQueriesInput struct {
	User  string `json:"user,omitempty" jsonschema:"user whose behaviour drives the suggestions (default local user)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 4)"`
}

// SuggestQueriesOutput is the output schema for the suggest_queries tool.
type SuggestQueriesOutput struct {
	Suggestions  []string `json:"suggestions"`
	Personalized bool     `json:"personalized"`
}

// SaveCandidateInput is the input schema for the save_candidate tool.
type SaveCandidateInput struct {
	CandidateID string   `json:"candidate_id" jsonschema:"id of the candidate to save"`
	User        string   `json:"user,omitempty" jsonschema:"user saving the candidate (default local user)"`
	Notes       string   `json:"notes,omitempty" jsonschema:"free-form notes to attach"`
	Tags        []string `json:"tags,omitempty" jsonschema:"labels to attach"`
}

// SaveCandidateOutput is the output schema for the save_candidate tool.
type SaveCandidateOutput struct {
	CandidateID string `json:"candidate_id"`
	Saved       bool   `json:"saved"`
}

// SearchHistoryInput is the input schema for the search_history tool.
type SearchHistoryInput struct {
	User  string `json:"user,omitempty" jsonschema:"user whose history to list (default local user)"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	Limit int    `json:"limit,omitempty" jsonschema:"page size (default 20)"`
}

// SearchHistoryOutput is the output schema for the search_history tool.
type SearchHistoryOutput struct {
	Records    []HistoryRecordOutput `json:"records"`
	TotalCount int                   `json:"total_count"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

// HistoryRecordOutput represents a single logged search.
type HistoryRecordOutput struct {
	ID          string `json:"id"`
	Query       string `json:"query"`
	ResultCount int    `json:"result_count"`
	CreatedAt   string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_candidates",
		Description: "Search the candidate corpus with a free-text query",
	}, s.handleSearchCandidates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_queries",
		Description: "Suggest searches based on the user's recent activity",
	}, s.handleSuggestQueries)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_candidate",
		Description: "Save a candidate with optional notes and tags",
	}, s.handleSaveCandidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_history",
		Description: "List the user's recent searches",
	}, s.handleSearchHistory)
}

// handleSearchCandidates handles the search_candidates tool invocation.
func (s *Server) handleSearchCandidates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCandidatesInput,
) (*mcp.CallToolResult, SearchCandidatesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	opts := domain.SearchOptions{
		Strategy: domain.RetrievalStrategy(input.Strategy),
		Limit:    limit,
		Filters: domain.Filters{
			Role:               input.Role,
			Remote:             input.Remote,
			Tools:              input.Tools,
			MinExperienceYears: input.MinExperience,
			MaxExperienceYears: input.MaxExperience,
		},
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchCandidatesOutput{}, err
	}

	output := SearchCandidatesOutput{
		Results:    make([]CandidateResultOutput, len(resp.Results)),
		Count:      resp.Count,
		TotalCount: resp.TotalCount,
		Strategy:   string(resp.Strategy),
	}

	for i := range resp.Results {
		r := &resp.Results[i]
		output.Results[i] = CandidateResultOutput{
			CandidateID: r.Candidate.ID,
			Name:        r.Candidate.Name,
			Role:        r.Candidate.Role,
			Company:     r.Candidate.CompanyName,
			Rank:        r.Rank,
			Score:       r.Score,
			Label:       string(r.Label),
			Reasons:     r.Reasons,
		}
	}

	return nil, output, nil
}

// handleSuggestQueries handles the suggest_queries tool invocation.
func (s *Server) handleSuggestQueries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestQueriesInput,
) (*mcp.CallToolResult, SuggestQueriesOutput, error) {
	if s.ports.Recommend == nil {
		return nil, SuggestQueriesOutput{}, errors.New("recommendation service not available")
	}

	suggestions, err := s.ports.Recommend.Suggest(ctx, input.User, input.Limit)
	if err != nil {
		return nil, SuggestQueriesOutput{}, err
	}

	return nil, SuggestQueriesOutput{
		Suggestions:  suggestions.Suggestions,
		Personalized: suggestions.Personalized,
	}, nil
}

// handleSaveCandidate handles the save_candidate tool invocation.
func (s *Server) handleSaveCandidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveCandidateInput,
) (*mcp.CallToolResult, SaveCandidateOutput, error) {
	if s.ports.Candidates == nil {
		return nil, SaveCandidateOutput{}, errors.New("candidate service not available")
	}
	if input.CandidateID == "" {
		return nil, SaveCandidateOutput{}, fmt.Errorf("candidate_id is required: %w", domain.ErrInvalidInput)
	}

	if err := s.ports.Candidates.Save(ctx, input.User, input.CandidateID, input.Notes, input.Tags); err != nil {
		return nil, SaveCandidateOutput{}, err
	}

	return nil, SaveCandidateOutput{
		CandidateID: input.CandidateID,
		Saved:       true,
	}, nil
}

// handleSearchHistory handles the search_history tool invocation.
func (s *Server) handleSearchHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchHistoryInput,
) (*mcp.CallToolResult, SearchHistoryOutput, error) {
	if s.ports.History == nil {
		return nil, SearchHistoryOutput{}, errors.New("history service not available")
	}

	page, err := s.ports.History.List(ctx, input.User, input.Page, input.Limit)
	if err != nil {
		return nil, SearchHistoryOutput{}, err
	}

	output := SearchHistoryOutput{
		Records:    make([]HistoryRecordOutput, len(page.Records)),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}

	for i := range page.Records {
		rec := &page.Records[i]
		output.Records[i] = HistoryRecordOutput{
			ID:          rec.ID,
			Query:       rec.Query,
			ResultCount: rec.ResultCount,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		}
	}

	return nil, output, nil
}
