package domain

import "sort"

// BehaviorWindow is how many recent searches feed a behavior snapshot.
const BehaviorWindow = 20

// BehaviorSnapshot is one user's recent activity, read fresh for every
// recommendation request. It is never cached and never persisted; only
// the raw history rows behind it are.
type BehaviorSnapshot struct {
	// Queries holds the most recent search queries, newest first,
	// at most BehaviorWindow entries.
	Queries []string

	// Saved holds every candidate the user currently has saved,
	// with full candidate data.
	Saved []Candidate
}

// SearchCount returns the number of searches in the window.
func (s BehaviorSnapshot) SearchCount() int {
	return len(s.Queries)
}

// SavedCount returns the number of saved candidates.
func (s BehaviorSnapshot) SavedCount() int {
	return len(s.Saved)
}

// IsColdStart reports whether the snapshot carries too little signal to
// personalise: fewer than three searches and no saved candidates.
func (s BehaviorSnapshot) IsColdStart() bool {
	return s.SearchCount() < 3 && s.SavedCount() < 1
}

// RoleWeight is one entry of the weighted role frequency map. Entries
// keep first-seen order so tie-breaking stays deterministic.
type RoleWeight struct {
	// Role is the canonical role name.
	Role string

	// Weight is the accumulated signal weight.
	Weight float64
}

// RolePattern is the weighted behavioural profile mined from a
// snapshot. Saved candidates are a stronger implicit signal than
// searches, so their roles carry double weight.
type RolePattern struct {
	// Roles is the weighted role frequency map, in first-seen order.
	Roles []RoleWeight

	// TopTools are the most common tools across saved candidates,
	// at most three.
	TopTools []string

	// RemotePreferred is true when more than 60% of saved candidates
	// work remotely.
	RemotePreferred bool

	// AvgExperience is the mean experience of saved candidates that
	// report any, in years.
	AvgExperience float64

	// CompanySizes are the modal headcount buckets of saved
	// candidates, at most two.
	CompanySizes []string

	// Industries are the most common industries of saved candidates,
	// at most two.
	Industries []string
}

// AddRole accumulates weight for a role, preserving first-seen order.
func (p *RolePattern) AddRole(role string, weight float64) {
	for i := range p.Roles {
		if p.Roles[i].Role == role {
			p.Roles[i].Weight += weight
			return
		}
	}
	p.Roles = append(p.Roles, RoleWeight{Role: role, Weight: weight})
}

// TopRoles returns up to n role names by descending weight. Ties keep
// first-seen order, so the result is deterministic for a given
// snapshot.
func (p RolePattern) TopRoles(n int) []string {
	if n <= 0 || len(p.Roles) == 0 {
		return nil
	}

	ordered := make([]RoleWeight, len(p.Roles))
	copy(ordered, p.Roles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})

	if len(ordered) > n {
		ordered = ordered[:n]
	}
	roles := make([]string, len(ordered))
	for i, rw := range ordered {
		roles[i] = rw.Role
	}
	return roles
}

// Suggestions is the answer to a recommendation request.
type Suggestions struct {
	// Suggestions are ready-to-run query strings.
	Suggestions []string

	// Personalized is false when the generic cold-start set was used.
	Personalized bool

	// BasedOn reports the activity counts behind the answer.
	BasedOn SuggestionBasis
}

// SuggestionBasis is the activity summary behind a suggestion set.
type SuggestionBasis struct {
	// Searches is the number of history queries considered.
	Searches int

	// Saved is the number of saved candidates considered.
	Saved int
}
