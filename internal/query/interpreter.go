// Package query turns free-text recruiter queries into structured
// filters and expanded term lists. Extraction and expansion are pure
// string work with fixed vocabularies; nothing here touches an index
// or the network.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// roleEntry maps a query phrase to a canonical role title. Order
// matters: the first matching entry wins, so abbreviations sit before
// the longer phrases they could shadow.
type roleEntry struct {
	key  string
	role string
}

var roleEntries = []roleEntry{
	{"pm", "Product Manager"},
	{"pms", "Product Manager"},
	{"product manager", "Product Manager"},
	{"ux", "UX Designer"},
	{"ux designer", "UX Designer"},
	{"ui designer", "UI Designer"},
	{"designer", "UX Designer"},
	{"dev", "Software Engineer"},
	{"developer", "Software Engineer"},
	{"engineer", "Software Engineer"},
	{"software engineer", "Software Engineer"},
	{"em", "Engineering Manager"},
	{"eng manager", "Engineering Manager"},
	{"engineering manager", "Engineering Manager"},
	{"ds", "Data Scientist"},
	{"data scientist", "Data Scientist"},
	{"project manager", "Project Manager"},
	{"marketing manager", "Marketing Manager"},
	{"customer success manager", "Customer Success Manager"},
	{"sales manager", "Sales Manager"},
	{"frontend", "Frontend Engineer"},
	{"backend", "Backend Engineer"},
	{"fullstack", "Full Stack Engineer"},
	{"qa", "QA Engineer"},
	{"devops", "DevOps Engineer"},
}

// rolePatterns holds one word-boundary regex per role entry, in table
// order.
var rolePatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(roleEntries))
	for i, entry := range roleEntries {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(entry.key) + `\b`)
	}
	return patterns
}()

// remoteVocabulary and onsiteVocabulary are matched as substrings of
// the lowercased query. Only an unambiguous query sets the flag.
var (
	remoteVocabulary = []string{"remote", "work from home", "wfh", "distributed", "telecommute"}
	onsiteVocabulary = []string{"onsite", "on-site", "office", "in-person", "on site"}
)

// toolVocabulary lists every tool the extractor recognises, in
// canonical casing. Matching is case-insensitive substring containment
// against the raw query, so "monday.com" survives even though the
// normaliser strips dots.
var toolVocabulary = []string{
	"Trello", "Asana", "Jira", "Notion", "Monday.com", "ClickUp",
	"Slack", "Microsoft Teams", "Zoom", "Google Meet",
	"Figma", "Sketch", "Adobe XD", "InVision",
	"GitHub", "GitLab", "Bitbucket",
	"Salesforce", "HubSpot", "Intercom",
	"Google Analytics", "Mixpanel", "Amplitude",
	"Airtable", "Coda", "Confluence",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"React", "Vue", "Angular", "Python", "JavaScript",
}

var (
	experienceRangePattern  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*years?`)
	experienceSinglePattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:or more\s*)?years?`)

	teamRangePattern     = regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*(?:people|team|reports|direct)`)
	teamToRangePattern   = regexp.MustCompile(`(\d+)\s+to\s+(\d+)\s*(?:people|team|reports)`)
	teamVerbRangePattern = regexp.MustCompile(`(?:team of|manages?|leads?)\s+(\d+)\s*-\s*(\d+)`)
	teamVerbPattern      = regexp.MustCompile(`(?:manages?|leads?|team of)\s+(\d+)`)

	companyRangePattern = regexp.MustCompile(`company.*?(\d+)\s*-\s*(\d+)`)
)

// companySizeEntry maps a size keyword to headcount buckets. First
// keyword found in the query wins.
type companySizeEntry struct {
	key     string
	buckets []string
}

var companySizeEntries = []companySizeEntry{
	{"small", []string{"1-10", "10-50"}},
	{"medium", []string{"50-200", "200-500"}},
	{"large", []string{"500-1000", "1000+"}},
	{"startup", []string{"1-10", "10-50", "50-200"}},
	{"enterprise", []string{"500-1000", "1000+"}},
}

// Interpreter extracts structured filters from free-text queries.
type Interpreter struct{}

// NewInterpreter creates a filter extractor.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Extract pulls every recognised constraint out of the query. A query
// with no recognisable constraints returns zero-value Filters, which
// is not an error; the search simply runs unconstrained.
func (in *Interpreter) Extract(raw string) domain.Filters {
	lowered := strings.ToLower(raw)

	filters := domain.Filters{
		Role:         extractRole(lowered),
		Remote:       extractRemote(lowered),
		Tools:        extractTools(lowered),
		CompanySizes: extractCompanySizes(lowered),
	}
	filters.MinExperienceYears, filters.MaxExperienceYears = extractExperience(lowered)
	filters.MinTeamSize, filters.MaxTeamSize = extractTeamSize(lowered)
	return filters
}

// ExtractRoles returns every DISTINCT role the query mentions, in
// table order. Used by the recommendation engine, which wants all
// roles a query touched rather than just the first.
func (in *Interpreter) ExtractRoles(raw string) []string {
	lowered := strings.ToLower(raw)

	var roles []string
	seen := make(map[string]bool)
	for i, entry := range roleEntries {
		if !rolePatterns[i].MatchString(lowered) {
			continue
		}
		if seen[entry.role] {
			continue
		}
		seen[entry.role] = true
		roles = append(roles, entry.role)
	}
	return roles
}

func extractRole(lowered string) string {
	for i, entry := range roleEntries {
		if rolePatterns[i].MatchString(lowered) {
			return entry.role
		}
	}
	return ""
}

func extractRemote(lowered string) *bool {
	wantsRemote := containsAny(lowered, remoteVocabulary)
	wantsOnsite := containsAny(lowered, onsiteVocabulary)

	// Contradictory or absent signals leave the flag unset.
	if wantsRemote == wantsOnsite {
		return nil
	}
	result := wantsRemote
	return &result
}

func extractTools(lowered string) []string {
	var tools []string
	for _, tool := range toolVocabulary {
		if strings.Contains(lowered, strings.ToLower(tool)) {
			tools = append(tools, tool)
		}
	}
	return tools
}

func extractExperience(lowered string) (minYears, maxYears *int) {
	if m := experienceRangePattern.FindStringSubmatch(lowered); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}
	if m := experienceSinglePattern.FindStringSubmatch(lowered); m != nil {
		return atoiPtr(m[1]), nil
	}
	return nil, nil
}

func extractTeamSize(lowered string) (minSize, maxSize *int) {
	if m := teamRangePattern.FindStringSubmatch(lowered); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}
	if m := teamToRangePattern.FindStringSubmatch(lowered); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}
	if m := teamVerbRangePattern.FindStringSubmatch(lowered); m != nil {
		return atoiPtr(m[1]), atoiPtr(m[2])
	}
	if m := teamVerbPattern.FindStringSubmatch(lowered); m != nil {
		n := atoiPtr(m[1])
		return n, n
	}
	return nil, nil
}

func extractCompanySizes(lowered string) []string {
	for _, entry := range companySizeEntries {
		if strings.Contains(lowered, entry.key) {
			return entry.buckets
		}
	}
	if m := companyRangePattern.FindStringSubmatch(lowered); m != nil {
		return []string{fmt.Sprintf("%s-%s", m[1], m[2])}
	}
	return nil
}

func containsAny(s string, vocabulary []string) bool {
	for _, word := range vocabulary {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

// atoiPtr converts a regex-captured digit group. The pattern
// guarantees digits, so conversion cannot fail.
func atoiPtr(s string) *int {
	n, _ := strconv.Atoi(s)
	return &n
}
