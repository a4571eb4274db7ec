package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
	"github.com/talentbase-labs/scout-cli/internal/logger"
	"github.com/talentbase-labs/scout-cli/internal/query"
)

// Ensure RecommendationService implements the interface.
var _ driving.RecommendService = (*RecommendationService)(nil)

// Role weights: a saved candidate is a stronger implicit signal than a
// query mention.
const (
	savedRoleWeight = 2.0
	queryRoleWeight = 1.0
)

// maxTemplateRoles caps how many top roles feed the templates.
const maxTemplateRoles = 4

// Template kinds. Shuffled once per request so repeated calls vary.
const (
	kindRemote     = "remote"
	kindTool       = "tool"
	kindExperience = "experience"
	kindSize       = "size"
	kindIndustry   = "industry"
)

// genericSuggestions is the fixed cold-start set, served in order.
var genericSuggestions = []string{
	"Remote professionals with 5+ years experience",
	"Managers at mid-size companies",
	"Specialists using Salesforce",
	"Recent graduates with relevant skills",
	"Project managers in consulting",
	"Analysts at startups",
}

// fillSuggestions pads a thin personalised pool.
var fillSuggestions = []string{
	"Experienced professionals with leadership skills",
	"Mid-level specialists at growing companies",
	"Remote workers with strong communication skills",
	"Managers with 5+ years experience",
}

// RecommendationService suggests queries from a user's recent
// behaviour. Every request reads the behaviour snapshot fresh; nothing
// is cached between calls.
type RecommendationService struct {
	history      driven.HistoryStore
	candidates   driven.CandidateStore
	interpreter  *query.Interpreter
	window       int
	defaultCount int

	// mu guards rng; *rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendationService creates a new recommendation service. A nil
// rng gets a time-seeded source; tests pass a fixed seed for
// deterministic shuffles.
func NewRecommendationService(
	history driven.HistoryStore,
	candidates driven.CandidateStore,
	settings domain.AppSettings,
	rng *rand.Rand,
) *RecommendationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // math/rand is fine for suggestion shuffling
	}
	window := settings.Recommendation.HistoryWindow
	if window <= 0 {
		window = domain.BehaviorWindow
	}
	defaultCount := settings.Recommendation.SuggestionCount
	if defaultCount <= 0 {
		defaultCount = domain.DefaultAppSettings().Recommendation.SuggestionCount
	}

	return &RecommendationService{
		history:      history,
		candidates:   candidates,
		interpreter:  query.NewInterpreter(),
		window:       window,
		defaultCount: defaultCount,
		rng:          rng,
	}
}

// Suggest returns up to limit ready-to-run query suggestions. New
// users with too little history get the generic starter set, as does
// any request whose behaviour snapshot cannot be read.
func (s *RecommendationService) Suggest(
	ctx context.Context, userID string, limit int,
) (*domain.Suggestions, error) {
	logger.Section("Suggestion Generation")
	if userID == "" {
		userID = domain.DefaultUserID
	}
	if limit <= 0 {
		limit = s.defaultCount
	}

	snapshot, err := s.buildSnapshot(ctx, userID)
	if err != nil {
		logger.Warn("Behaviour analysis failed for %s: %v", userID, err)
		return &domain.Suggestions{
			Suggestions:  genericSet(limit),
			Personalized: false,
		}, nil
	}

	basis := domain.SuggestionBasis{
		Searches: snapshot.SearchCount(),
		Saved:    snapshot.SavedCount(),
	}
	logger.Debug("Behaviour: %d searches, %d saved", basis.Searches, basis.Saved)

	if snapshot.IsColdStart() {
		logger.Debug("Cold start, serving generic suggestions")
		return &domain.Suggestions{
			Suggestions:  genericSet(limit),
			Personalized: false,
			BasedOn:      basis,
		}, nil
	}

	pattern := s.extractPattern(snapshot)
	pool := s.generateQueries(pattern, limit*2)
	suggestions := dedupeStrings(pool)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	logger.Info("Generated %d suggestions (personalised)", len(suggestions))

	return &domain.Suggestions{
		Suggestions:  suggestions,
		Personalized: true,
		BasedOn:      basis,
	}, nil
}

// buildSnapshot reads the user's recent behaviour: the last window of
// query strings plus every saved candidate joined with its record.
// Saved rows whose candidate left the corpus are skipped, not errors.
func (s *RecommendationService) buildSnapshot(
	ctx context.Context, userID string,
) (*domain.BehaviorSnapshot, error) {
	queries, err := s.history.RecentQueries(ctx, userID, s.window)
	if err != nil {
		return nil, err
	}

	saved, err := s.history.SavedCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(saved))
	for _, row := range saved {
		candidate, err := s.candidates.Get(ctx, row.CandidateID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *candidate)
	}

	return &domain.BehaviorSnapshot{
		Queries: queries,
		Saved:   candidates,
	}, nil
}

// extractPattern mines the weighted behavioural profile from a
// snapshot. Saved roles carry double weight; each history query
// contributes each distinct role it mentions once.
func (s *RecommendationService) extractPattern(snapshot *domain.BehaviorSnapshot) domain.RolePattern {
	var pattern domain.RolePattern

	for i := range snapshot.Saved {
		if role := snapshot.Saved[i].Role; role != "" {
			pattern.AddRole(role, savedRoleWeight)
		}
	}
	for _, q := range snapshot.Queries {
		for _, role := range s.interpreter.ExtractRoles(q) {
			pattern.AddRole(role, queryRoleWeight)
		}
	}

	tools := newOrderedCounter()
	sizes := newOrderedCounter()
	industries := newOrderedCounter()
	remoteCount := 0
	expTotal, expCount := 0, 0
	for i := range snapshot.Saved {
		c := &snapshot.Saved[i]
		for _, tool := range c.Tools {
			tools.Add(tool)
		}
		if c.CompanySize != "" {
			sizes.Add(c.CompanySize)
		}
		if c.Industry != "" {
			industries.Add(c.Industry)
		}
		if c.Remote {
			remoteCount++
		}
		if c.ExperienceYears > 0 {
			expTotal += c.ExperienceYears
			expCount++
		}
	}

	pattern.TopTools = tools.Top(3)
	pattern.CompanySizes = sizes.Top(2)
	pattern.Industries = industries.Top(2)
	pattern.RemotePreferred = float64(remoteCount) > 0.6*float64(len(snapshot.Saved))
	if expCount > 0 {
		pattern.AvgExperience = float64(expTotal) / float64(expCount)
	}
	return pattern
}

// generateQueries renders templated queries from the pattern: each of
// the top roles takes two template kinds from a freshly shuffled
// rotation, and a thin pool is padded with the fill set. The result is
// shuffled and capped at count.
func (s *RecommendationService) generateQueries(pattern domain.RolePattern, count int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := templateKinds()
	s.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	threshold := experienceThreshold(pattern.AvgExperience)

	queries := make([]string, 0, count)
	seen := make(map[string]bool)
	add := func(q string) {
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		queries = append(queries, q)
	}

	for i, role := range pattern.TopRoles(maxTemplateRoles) {
		for offset := 0; offset < 2; offset++ {
			kind := kinds[(i+offset)%len(kinds)]
			add(renderTemplate(kind, role, pattern, i+offset, threshold))
		}
	}

	if len(queries) < count {
		queries = append(queries, fillSuggestions...)
	}

	s.rng.Shuffle(len(queries), func(i, j int) {
		queries[i], queries[j] = queries[j], queries[i]
	})

	if len(queries) > count {
		queries = queries[:count]
	}
	return queries
}

// renderTemplate renders one template kind for a role. A kind the
// pattern cannot fill falls back to the bare role.
func renderTemplate(kind, role string, pattern domain.RolePattern, rotation int, threshold string) string {
	switch kind {
	case kindRemote:
		if pattern.RemotePreferred {
			return "Remote " + role
		}
	case kindTool:
		if len(pattern.TopTools) > 0 {
			return role + " using " + pattern.TopTools[rotation%len(pattern.TopTools)]
		}
	case kindExperience:
		if threshold != "" {
			return role + " with " + threshold + "+ years experience"
		}
	case kindSize:
		if len(pattern.CompanySizes) > 0 {
			return role + " at " + companySizeLabel(pattern.CompanySizes[0]) + " companies"
		}
	case kindIndustry:
		if len(pattern.Industries) > 0 {
			return role + " in " + pattern.Industries[rotation%len(pattern.Industries)]
		}
	}
	return role
}

// templateKinds returns a fresh kind rotation; callers shuffle it in
// place.
func templateKinds() []string {
	return []string{kindRemote, kindTool, kindExperience, kindSize, kindIndustry}
}

// experienceThreshold buckets an average into the template threshold
// string, or empty below the lowest band.
func experienceThreshold(avg float64) string {
	switch {
	case avg >= 7:
		return "7"
	case avg >= 5:
		return "5"
	case avg >= 3:
		return "3"
	default:
		return ""
	}
}

// companySizeLabel maps a headcount bucket to its query wording.
// Unknown buckets read as mid-size.
func companySizeLabel(bucket string) string {
	switch bucket {
	case "1-10":
		return "startup"
	case "10-50":
		return "small"
	case "50-200", "200-500":
		return "mid-size"
	case "500-1000":
		return "large"
	case "1000+":
		return "enterprise"
	default:
		return "mid-size"
	}
}

// genericSet returns a copy of the cold-start suggestions, truncated
// to limit.
func genericSet(limit int) []string {
	n := limit
	if n > len(genericSuggestions) {
		n = len(genericSuggestions)
	}
	return append([]string(nil), genericSuggestions[:n]...)
}

// dedupeStrings removes duplicates preserving first-seen order.
func dedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
