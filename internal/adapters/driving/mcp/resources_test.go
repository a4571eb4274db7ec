package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
)

func TestExtractCandidateID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid candidate URI",
			uri:      "scout://candidates/cand-123",
			expected: "cand-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://candidates/cand-123",
			expected: "",
		},
		{
			name:     "missing id",
			uri:      "scout://candidates/",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractCandidateID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSavedResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil candidate service returns empty list", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://saved")
		result, err := server.handleSavedResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns saved candidates as JSON", func(t *testing.T) {
		mockCandidates := &mockCandidateService{
			saved: []driving.SavedView{
				{
					Candidate: domain.Candidate{
						ID:          "cand-1",
						Name:        "Maria Gomez",
						Role:        "Product Manager",
						CompanyName: "Acme",
					},
					Saved: domain.SavedCandidate{
						CandidateID: "cand-1",
						Notes:       "strong PM",
						Tags:        []string{"shortlist"},
						SavedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
					},
				},
			},
		}

		ports := &Ports{Search: &mockSearchService{}, Candidates: mockCandidates}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://saved")
		result, err := server.handleSavedResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "scout://saved", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Maria Gomez")
		assert.Contains(t, result.Contents[0].Text, "strong PM")
		assert.Contains(t, result.Contents[0].Text, "shortlist")
	})

	t.Run("propagates listing errors", func(t *testing.T) {
		mockCandidates := &mockCandidateService{err: errors.New("store offline")}
		ports := &Ports{Search: &mockSearchService{}, Candidates: mockCandidates}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://saved")
		_, err = server.handleSavedResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "store offline")
	})
}

func TestServer_handleCandidateResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns candidate record as JSON", func(t *testing.T) {
		mockCandidates := &mockCandidateService{
			candidate: &domain.Candidate{
				ID:   "cand-7",
				Name: "Jon Snow",
				Role: "Engineering Manager",
			},
		}

		ports := &Ports{Search: &mockSearchService{}, Candidates: mockCandidates}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://candidates/cand-7")
		result, err := server.handleCandidateResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "scout://candidates/cand-7", result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, "Jon Snow")
		assert.Equal(t, "cand-7", mockCandidates.gotCandidateID)
	})

	t.Run("unknown candidate is resource not found", func(t *testing.T) {
		mockCandidates := &mockCandidateService{err: domain.ErrNotFound}
		ports := &Ports{Search: &mockSearchService{}, Candidates: mockCandidates}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://candidates/ghost")
		_, err = server.handleCandidateResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("malformed URI is resource not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, Candidates: &mockCandidateService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://nonsense")
		_, err = server.handleCandidateResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("nil candidate service is resource not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("scout://candidates/cand-7")
		_, err = server.handleCandidateResource(ctx, req)

		require.Error(t, err)
	})
}
