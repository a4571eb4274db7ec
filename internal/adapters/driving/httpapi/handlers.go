package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/logger"
)

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Query    string      `json:"query"`
	UserID   string      `json:"user_id,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
	TopK     int         `json:"top_k,omitempty"`
	Page     int         `json:"page,omitempty"`
	Limit    int         `json:"limit,omitempty"`
	Filters  filtersJSON `json:"filters,omitempty"`
}

// filtersJSON mirrors domain.Filters with snake_case keys. Pointer
// fields keep "absent" distinct from zero so `"remote": false` means
// on-site rather than no preference.
type filtersJSON struct {
	Role               string   `json:"role,omitempty"`
	Remote             *bool    `json:"remote,omitempty"`
	Tools              []string `json:"tools,omitempty"`
	MinExperienceYears *int     `json:"min_experience_years,omitempty"`
	MaxExperienceYears *int     `json:"max_experience_years,omitempty"`
	MinTeamSize        *int     `json:"min_team_size,omitempty"`
	MaxTeamSize        *int     `json:"max_team_size,omitempty"`
	CompanySizes       []string `json:"company_sizes,omitempty"`
}

func (f filtersJSON) toDomain() domain.Filters {
	return domain.Filters{
		Role:               f.Role,
		Remote:             f.Remote,
		Tools:              f.Tools,
		MinExperienceYears: f.MinExperienceYears,
		MaxExperienceYears: f.MaxExperienceYears,
		MinTeamSize:        f.MinTeamSize,
		MaxTeamSize:        f.MaxTeamSize,
		CompanySizes:       f.CompanySizes,
	}
}

// saveRequest is the POST /api/saved/{id} body.
type saveRequest struct {
	UserID string   `json:"user_id,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := domain.SearchOptions{
		UserID:   req.UserID,
		Strategy: domain.RetrievalStrategy(req.Strategy),
		TopK:     req.TopK,
		Page:     req.Page,
		Limit:    req.Limit,
		Filters:  req.Filters.toDomain(),
	}

	resp, err := s.ports.Search.Search(r.Context(), req.Query, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.ports.Candidates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (s *Server) handleSearches(w http.ResponseWriter, r *http.Request) {
	page, err := s.ports.History.List(r.Context(), r.URL.Query().Get("user"),
		queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	err := s.ports.History.Delete(r.Context(), r.URL.Query().Get("user"),
		chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := s.ports.Candidates.Saved(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	err := s.ports.Candidates.Save(r.Context(), req.UserID,
		chi.URLParam(r, "id"), req.Notes, req.Tags)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnsave(w http.ResponseWriter, r *http.Request) {
	err := s.ports.Candidates.Unsave(r.Context(), r.URL.Query().Get("user"),
		chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.ports.Recommend.Suggest(r.Context(),
		r.URL.Query().Get("user"), queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ports.History.Stats(r.Context(), r.URL.Query().Get("user"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidSetting):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrIndexUnavailable),
		errors.Is(err, domain.ErrVectorIndexUnavailable),
		errors.Is(err, domain.ErrHistoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// queryInt parses an integer query parameter, 0 when absent or bad.
// Services treat 0 as "use default".
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
