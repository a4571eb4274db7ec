package services

import (
	"fmt"
	"strings"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// maxMatchReasons caps the explanation list per result.
const maxMatchReasons = 5

// maxListedItems caps how many tools or skills one reason names.
const maxListedItems = 3

// matchReasons explains why a candidate matched, in fixed priority
// order: role, tools, remote status, skills, employer, experience,
// team size, company size, location. At most maxMatchReasons entries.
// Reasons depend only on the candidate, the query terms and the
// filters, never on the fused score.
func matchReasons(c *domain.Candidate, terms []string, filters domain.Filters) []string {
	reasons := make([]string, 0, maxMatchReasons)

	if c.Role != "" {
		reasons = append(reasons, "Role: "+c.Role)
	}

	if reason := toolsReason(c, terms, filters); reason != "" {
		reasons = append(reasons, reason)
	}

	if c.Remote {
		reasons = append(reasons, "Remote worker")
	}

	if reason := skillsReason(c, terms); reason != "" {
		reasons = append(reasons, reason)
	}

	if c.CompanyName != "" && anyTermInside(terms, c.CompanyName) {
		reasons = append(reasons, "Works at "+c.CompanyName)
	}

	if c.ExperienceYears > 0 {
		reasons = append(reasons, fmt.Sprintf("%d years of experience", c.ExperienceYears))
	}

	if filters.MinTeamSize != nil && c.TeamSize > 0 {
		reasons = append(reasons, fmt.Sprintf("Manages team of %d", c.TeamSize))
	}

	if len(filters.CompanySizes) > 0 && c.CompanySize != "" && containsFold(filters.CompanySizes, c.CompanySize) {
		reasons = append(reasons, "Company size: "+c.CompanySize)
	}

	if c.Location != "" && anyTermInside(terms, c.Location) {
		reasons = append(reasons, "Location: "+c.Location)
	}

	if len(reasons) > maxMatchReasons {
		reasons = reasons[:maxMatchReasons]
	}
	return reasons
}

// toolsReason picks which tools to highlight. Filtered tools win; with
// no tool filter, tools named in the query; with neither, the first
// few. A tool filter that matched nothing suppresses the reason rather
// than falling back.
func toolsReason(c *domain.Candidate, terms []string, filters domain.Filters) string {
	if len(c.Tools) == 0 {
		return ""
	}

	switch {
	case len(filters.Tools) > 0:
		var matched []string
		for _, tool := range c.Tools {
			if containsFold(filters.Tools, tool) {
				matched = append(matched, tool)
			}
		}
		if len(matched) == 0 {
			return ""
		}
		return "Uses " + strings.Join(matched, ", ")

	case len(terms) > 0:
		var matched []string
		for _, tool := range c.Tools {
			if containsFold(terms, tool) {
				matched = append(matched, tool)
			}
		}
		if len(matched) == 0 {
			return ""
		}
		return "Uses " + strings.Join(capped(matched), ", ")

	default:
		return "Uses " + strings.Join(capped(c.Tools), ", ")
	}
}

// skillsReason highlights skills touched by the query, or the first
// few when none are. A candidate with skills always gets a reason.
func skillsReason(c *domain.Candidate, terms []string) string {
	if len(c.Skills) == 0 {
		return ""
	}

	if len(terms) > 0 {
		var matched []string
		for _, skill := range c.Skills {
			if anyTermInside(terms, skill) {
				matched = append(matched, skill)
			}
		}
		if len(matched) > 0 {
			return "Skills: " + strings.Join(capped(matched), ", ")
		}
	}
	return "Skills: " + strings.Join(capped(c.Skills), ", ")
}

// anyTermInside reports whether any query term appears inside the text
// (case-insensitive substring).
func anyTermInside(terms []string, text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// containsFold reports whether the list contains the value,
// compared case-insensitively.
func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func capped(items []string) []string {
	if len(items) > maxListedItems {
		return items[:maxListedItems]
	}
	return items
}
