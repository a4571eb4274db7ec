package query

import (
	"regexp"
	"strings"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// synonymTable maps query phrases to their expansions. Expansion
// APPENDS the mapped text after the original phrase rather than
// replacing it, so both spellings contribute retrieval terms.
var synonymTable = map[string]string{
	"pm":             "product manager",
	"pms":            "product manager",
	"ux":             "user experience",
	"ui":             "user interface",
	"dev":            "developer",
	"eng":            "engineer",
	"qa":             "quality assurance",
	"devops":         "development operations",
	"swe":            "software engineer",
	"fe":             "frontend",
	"be":             "backend",
	"wfh":            "remote work from home",
	"work from home": "remote",
	"remote work":    "remote",
	"telecommute":    "remote",
	"sr":             "senior",
	"jr":             "junior",
	"lead":           "senior lead",
	"js":             "javascript",
	"ts":             "typescript",
	"k8s":            "kubernetes",
	"aws":            "amazon web services",
	"gcp":            "google cloud platform",
}

// maxPhraseTokens bounds the synonym lookup window. The longest key in
// the table is three tokens.
const maxPhraseTokens = 4

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Expander normalises queries and grows them with synonyms so lexical
// and semantic retrieval both see the vocabulary candidates actually
// use in their profiles.
type Expander struct{}

// NewExpander creates a query expander.
func NewExpander() *Expander {
	return &Expander{}
}

// Expand normalises the query and appends synonym expansions.
func (e *Expander) Expand(raw string) domain.ExpandedQuery {
	normalized := Normalize(raw)
	expanded := expandSynonyms(normalized)

	return domain.ExpandedQuery{
		Original:   raw,
		Normalized: normalized,
		Expanded:   expanded,
		Terms:      dedupeTerms(strings.Fields(expanded)),
	}
}

// Normalize lowercases the text, turns punctuation into spaces (hyphen
// and underscore survive) and collapses runs of whitespace.
func Normalize(raw string) string {
	lowered := strings.ToLower(raw)
	stripped := nonWordPattern.ReplaceAllString(lowered, " ")
	collapsed := whitespacePattern.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

// expandSynonyms walks the token stream trying the longest phrase
// first at each position. A hit emits the original phrase followed by
// its expansion and skips past the phrase; output is never re-scanned.
func expandSynonyms(normalized string) string {
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return ""
	}

	var out []string
	for i := 0; i < len(tokens); {
		matched := false
		longest := maxPhraseTokens
		if remaining := len(tokens) - i; remaining < longest {
			longest = remaining
		}
		for length := longest; length >= 1; length-- {
			phrase := strings.Join(tokens[i:i+length], " ")
			expansion, ok := synonymTable[phrase]
			if !ok {
				continue
			}
			out = append(out, tokens[i:i+length]...)
			out = append(out, strings.Fields(expansion)...)
			i += length
			matched = true
			break
		}
		if !matched {
			out = append(out, tokens[i])
			i++
		}
	}
	return strings.Join(out, " ")
}

// dedupeTerms removes repeated terms, keeping first occurrence order.
func dedupeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
	}
	return out
}
