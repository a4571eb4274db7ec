package domain

import "strings"

// Filters holds structured constraints extracted from a query or
// supplied explicitly by a caller. Every field is optional; the zero
// value means "unconstrained".
type Filters struct {
	// Role constrains the candidate's job title. Matching is a
	// case-insensitive substring check in either direction, so
	// "engineer" matches "Software Engineer" and vice versa.
	Role string

	// Remote constrains remote status. Nil means no preference.
	Remote *bool

	// Tools lists tools the candidate must ALL use (case-insensitive).
	Tools []string

	// MinExperienceYears / MaxExperienceYears bound total experience.
	MinExperienceYears *int
	MaxExperienceYears *int

	// MinTeamSize / MaxTeamSize bound the number of direct reports.
	MinTeamSize *int
	MaxTeamSize *int

	// CompanySizes lists acceptable headcount buckets.
	CompanySizes []string
}

// IsZero reports whether no constraint is set.
func (f Filters) IsZero() bool {
	return f.Role == "" &&
		f.Remote == nil &&
		len(f.Tools) == 0 &&
		f.MinExperienceYears == nil &&
		f.MaxExperienceYears == nil &&
		f.MinTeamSize == nil &&
		f.MaxTeamSize == nil &&
		len(f.CompanySizes) == 0
}

// Merge overlays override on top of f and returns the result.
// Fields set in override win; unset override fields keep f's value.
func (f Filters) Merge(override Filters) Filters {
	merged := f
	if override.Role != "" {
		merged.Role = override.Role
	}
	if override.Remote != nil {
		merged.Remote = override.Remote
	}
	if len(override.Tools) > 0 {
		merged.Tools = override.Tools
	}
	if override.MinExperienceYears != nil {
		merged.MinExperienceYears = override.MinExperienceYears
	}
	if override.MaxExperienceYears != nil {
		merged.MaxExperienceYears = override.MaxExperienceYears
	}
	if override.MinTeamSize != nil {
		merged.MinTeamSize = override.MinTeamSize
	}
	if override.MaxTeamSize != nil {
		merged.MaxTeamSize = override.MaxTeamSize
	}
	if len(override.CompanySizes) > 0 {
		merged.CompanySizes = override.CompanySizes
	}
	return merged
}

// Matches reports whether the candidate satisfies every set constraint.
// It is the single predicate used by both retrieval paths, so filtering
// can never disagree between them.
func (f Filters) Matches(c *Candidate) bool {
	if c == nil {
		return false
	}

	if f.Remote != nil && c.Remote != *f.Remote {
		return false
	}

	// All required tools must be present.
	for _, required := range f.Tools {
		if !c.HasTool(required) {
			return false
		}
	}

	if f.Role != "" {
		candidateRole := strings.ToLower(c.Role)
		filterRole := strings.ToLower(f.Role)
		if !strings.Contains(candidateRole, filterRole) && !strings.Contains(filterRole, candidateRole) {
			return false
		}
	}

	if f.MinTeamSize != nil && c.TeamSize < *f.MinTeamSize {
		return false
	}
	if f.MaxTeamSize != nil && c.TeamSize > *f.MaxTeamSize {
		return false
	}

	if len(f.CompanySizes) > 0 {
		found := false
		for _, size := range f.CompanySizes {
			if c.CompanySize == size {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.MinExperienceYears != nil && c.ExperienceYears < *f.MinExperienceYears {
		return false
	}
	if f.MaxExperienceYears != nil && c.ExperienceYears > *f.MaxExperienceYears {
		return false
	}

	return true
}
