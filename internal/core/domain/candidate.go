package domain

import (
	"strings"
	"time"
)

// Candidate represents a person in the searchable corpus.
// Records are produced and mutated by an external pipeline; a search
// only ever reads them.
type Candidate struct {
	// ID uniquely identifies the candidate.
	ID string

	// Name is the candidate's display name.
	Name string

	// Email is the contact address, if known.
	Email string

	// Role is the current job title, e.g. "Product Manager".
	Role string

	// Industry is the candidate's industry, e.g. "Healthcare".
	Industry string

	// CompanyName is the current employer.
	CompanyName string

	// CompanySize is the employer's headcount bucket.
	// One of: "1-10", "10-50", "50-200", "200-500", "500-1000", "1000+".
	CompanySize string

	// Remote indicates the candidate works remotely.
	Remote bool

	// TeamSize is the number of direct reports (0 if none).
	TeamSize int

	// ExperienceYears is total years of professional experience.
	ExperienceYears int

	// Tools are products the candidate uses, e.g. "Trello", "Figma".
	Tools []string

	// Skills are free-form skill names, e.g. "Roadmapping".
	Skills []string

	// Description is the free-text profile summary.
	Description string

	// Location is the candidate's location, if known.
	Location string

	// Embedding is the dense vector derived from the description.
	// Produced offline by the embedding pipeline; immutable once stored.
	// A search never writes to it.
	Embedding []float32

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record was last modified.
	UpdatedAt time.Time
}

// CompanySizeBuckets returns the recognised headcount buckets in
// ascending order.
func CompanySizeBuckets() []string {
	return []string{"1-10", "10-50", "50-200", "200-500", "500-1000", "1000+"}
}

// HasTool reports whether the candidate uses the named tool,
// compared case-insensitively.
func (c *Candidate) HasTool(tool string) bool {
	for _, t := range c.Tools {
		if strings.EqualFold(t, tool) {
			return true
		}
	}
	return false
}
