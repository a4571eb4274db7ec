package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for scout resources.
	uriScheme = "scout://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the saved-candidate shortlist.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "saved",
		Name:        "saved-candidates",
		Description: "Saved candidates for the local user",
		MIMEType:    "application/json",
	}, s.handleSavedResource)

	// Template for full candidate records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "candidates/{candidateId}",
		Name:        "candidate",
		Description: "Full record of a specific candidate",
		MIMEType:    "application/json",
	}, s.handleCandidateResource)
}

// handleSavedResource returns the saved candidates of the local user.
func (s *Server) handleSavedResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Candidates == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	saved, err := s.ports.Candidates.Saved(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing saved candidates: %w", err)
	}

	// Build simplified shortlist entries.
	type savedInfo struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Role    string   `json:"role"`
		Company string   `json:"company,omitempty"`
		Notes   string   `json:"notes,omitempty"`
		Tags    []string `json:"tags,omitempty"`
		SavedAt string   `json:"saved_at"`
	}

	infos := make([]savedInfo, len(saved))
	for i := range saved {
		infos[i] = savedInfo{
			ID:      saved[i].Candidate.ID,
			Name:    saved[i].Candidate.Name,
			Role:    saved[i].Candidate.Role,
			Company: saved[i].Candidate.CompanyName,
			Notes:   saved[i].Saved.Notes,
			Tags:    saved[i].Saved.Tags,
			SavedAt: saved[i].Saved.SavedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling saved candidates: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCandidateResource returns the full record of one candidate.
func (s *Server) handleCandidateResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Candidates == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract candidateId from URI: scout://candidates/{candidateId}
	candidateID := extractCandidateID(req.Params.URI)
	if candidateID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	candidate, err := s.ports.Candidates.Get(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting candidate: %w", err)
	}

	data, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling candidate: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCandidateID extracts the candidate ID from a URI like scout://candidates/{candidateId}.
func extractCandidateID(uri string) string {
	const prefix = uriScheme + "candidates/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
