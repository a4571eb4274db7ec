package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

func TestMatchReasons_PriorityOrder(t *testing.T) {
	candidate := &domain.Candidate{
		Role:            "Product Manager",
		Remote:          true,
		Tools:           []string{"Trello", "Figma"},
		Skills:          []string{"Roadmapping"},
		ExperienceYears: 8,
	}

	reasons := matchReasons(candidate, nil, domain.Filters{})

	require.Len(t, reasons, 5)
	assert.Equal(t, "Role: Product Manager", reasons[0])
	assert.Equal(t, "Uses Trello, Figma", reasons[1])
	assert.Equal(t, "Remote worker", reasons[2])
	assert.Equal(t, "Skills: Roadmapping", reasons[3])
	assert.Equal(t, "8 years of experience", reasons[4])
}

func TestMatchReasons_CapsAtFive(t *testing.T) {
	yes := true
	candidate := &domain.Candidate{
		Role:            "Product Manager",
		Remote:          true,
		Tools:           []string{"Trello"},
		Skills:          []string{"Agile"},
		CompanyName:     "Acme",
		CompanySize:     "50-200",
		TeamSize:        4,
		ExperienceYears: 9,
		Location:        "Lisbon",
	}
	minTeam := 2
	filters := domain.Filters{
		Remote:       &yes,
		MinTeamSize:  &minTeam,
		CompanySizes: []string{"50-200"},
	}

	reasons := matchReasons(candidate, []string{"acme", "lisbon"}, filters)

	assert.Len(t, reasons, 5)
}

func TestMatchReasons_EmptyCandidate(t *testing.T) {
	reasons := matchReasons(&domain.Candidate{}, []string{"manager"}, domain.Filters{})

	assert.Empty(t, reasons)
}

func TestMatchReasons_CompanyOnlyWhenQueried(t *testing.T) {
	candidate := &domain.Candidate{CompanyName: "Brightpay"}

	withTerm := matchReasons(candidate, []string{"brightpay"}, domain.Filters{})
	withoutTerm := matchReasons(candidate, []string{"designer"}, domain.Filters{})

	assert.Equal(t, []string{"Works at Brightpay"}, withTerm)
	assert.Empty(t, withoutTerm)
}

func TestMatchReasons_TeamSizeNeedsFilter(t *testing.T) {
	candidate := &domain.Candidate{TeamSize: 6}
	minTeam := 3

	withFilter := matchReasons(candidate, nil, domain.Filters{MinTeamSize: &minTeam})
	withoutFilter := matchReasons(candidate, nil, domain.Filters{})

	assert.Equal(t, []string{"Manages team of 6"}, withFilter)
	assert.Empty(t, withoutFilter)
}

func TestMatchReasons_CompanySizeNeedsFilterMatch(t *testing.T) {
	candidate := &domain.Candidate{CompanySize: "10-50"}

	matching := matchReasons(candidate, nil, domain.Filters{CompanySizes: []string{"10-50"}})
	other := matchReasons(candidate, nil, domain.Filters{CompanySizes: []string{"1000+"}})
	noFilter := matchReasons(candidate, nil, domain.Filters{})

	assert.Equal(t, []string{"Company size: 10-50"}, matching)
	assert.Empty(t, other)
	assert.Empty(t, noFilter)
}

func TestMatchReasons_Location(t *testing.T) {
	candidate := &domain.Candidate{Location: "Berlin, Germany"}

	reasons := matchReasons(candidate, []string{"berlin"}, domain.Filters{})

	assert.Equal(t, []string{"Location: Berlin, Germany"}, reasons)
}

func TestToolsReason_FilterMatchesAreUncapped(t *testing.T) {
	candidate := &domain.Candidate{
		Tools: []string{"Trello", "Figma", "Jira", "Slack", "Notion"},
	}
	filters := domain.Filters{
		Tools: []string{"trello", "figma", "jira", "slack", "notion"},
	}

	reason := toolsReason(candidate, nil, filters)

	// Every filtered tool is listed, past the usual cap of three.
	assert.Equal(t, "Uses Trello, Figma, Jira, Slack, Notion", reason)
}

func TestToolsReason_FilterWithNoMatchSuppresses(t *testing.T) {
	candidate := &domain.Candidate{Tools: []string{"Trello", "Figma"}}
	filters := domain.Filters{Tools: []string{"Salesforce"}}

	reason := toolsReason(candidate, []string{"trello"}, filters)

	// No fallback to query terms when a tool filter matched nothing.
	assert.Empty(t, reason)
}

func TestToolsReason_QueryTermsExactMatch(t *testing.T) {
	candidate := &domain.Candidate{Tools: []string{"Trello", "Figma", "Jira"}}

	reason := toolsReason(candidate, []string{"figma", "jira"}, domain.Filters{})

	assert.Equal(t, "Uses Figma, Jira", reason)
}

func TestToolsReason_QueryTermsNoMatchSuppresses(t *testing.T) {
	candidate := &domain.Candidate{Tools: []string{"Trello"}}

	reason := toolsReason(candidate, []string{"manager"}, domain.Filters{})

	assert.Empty(t, reason)
}

func TestToolsReason_NoTermsListsFirstThree(t *testing.T) {
	candidate := &domain.Candidate{
		Tools: []string{"Trello", "Figma", "Jira", "Slack"},
	}

	reason := toolsReason(candidate, nil, domain.Filters{})

	assert.Equal(t, "Uses Trello, Figma, Jira", reason)
}

func TestToolsReason_NoTools(t *testing.T) {
	reason := toolsReason(&domain.Candidate{}, []string{"figma"}, domain.Filters{})

	assert.Empty(t, reason)
}

func TestSkillsReason_MatchedTermsWin(t *testing.T) {
	candidate := &domain.Candidate{
		Skills: []string{"Roadmapping", "User Research", "Agile"},
	}

	reason := skillsReason(candidate, []string{"research"})

	assert.Equal(t, "Skills: User Research", reason)
}

func TestSkillsReason_FallsBackToFirstThree(t *testing.T) {
	candidate := &domain.Candidate{
		Skills: []string{"Roadmapping", "User Research", "Agile", "OKRs"},
	}

	// Terms match nothing, yet skills still produce a reason.
	reason := skillsReason(candidate, []string{"kubernetes"})

	assert.Equal(t, "Skills: Roadmapping, User Research, Agile", reason)
}

func TestSkillsReason_NoSkills(t *testing.T) {
	reason := skillsReason(&domain.Candidate{}, []string{"agile"})

	assert.Empty(t, reason)
}

func TestAnyTermInside(t *testing.T) {
	assert.True(t, anyTermInside([]string{"berlin"}, "Berlin, Germany"))
	assert.True(t, anyTermInside([]string{"xx", "acme"}, "Acme Health"))
	assert.False(t, anyTermInside([]string{"paris"}, "Berlin"))
	assert.False(t, anyTermInside(nil, "Berlin"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold([]string{"Figma", "Jira"}, "figma"))
	assert.False(t, containsFold([]string{"Figma"}, "fig"))
	assert.False(t, containsFold(nil, "figma"))
}
