// Package corpus loads candidate records from JSON corpus files and
// watches them for changes. The corpus is produced by an external
// pipeline; scout only reads it, so a reload replaces the whole set
// rather than merging.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// candidateRecord mirrors one entry of a corpus file. The field names
// match the snake_case keys the generation pipeline writes.
type candidateRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Industry        string    `json:"industry"`
	CompanyName     string    `json:"company_name"`
	CompanySize     string    `json:"company_size"`
	Remote          bool      `json:"remote"`
	TeamSize        int       `json:"team_size"`
	ExperienceYears int       `json:"experience_years"`
	Tools           []string  `json:"tools"`
	Skills          []string  `json:"skills"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Embedding       []float32 `json:"embedding"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoadFile reads a JSON candidate array from path.
func LoadFile(path string) ([]domain.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	candidates, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: %w", path, err)
	}
	return candidates, nil
}

// Load parses a JSON candidate array. Records without an id are given
// a generated one; records without a name reject the whole corpus so a
// half-broken file never silently replaces a good one.
func Load(r io.Reader) ([]domain.Candidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}

	var records []candidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(records))
	for i, record := range records {
		if record.Name == "" {
			return nil, fmt.Errorf("candidate %d: missing name: %w", i, domain.ErrInvalidInput)
		}
		if record.ID == "" {
			record.ID = uuid.New().String()
		}

		candidates = append(candidates, domain.Candidate{
			ID:              record.ID,
			Name:            record.Name,
			Email:           record.Email,
			Role:            record.Role,
			Industry:        record.Industry,
			CompanyName:     record.CompanyName,
			CompanySize:     record.CompanySize,
			Remote:          record.Remote,
			TeamSize:        record.TeamSize,
			ExperienceYears: record.ExperienceYears,
			Tools:           record.Tools,
			Skills:          record.Skills,
			Description:     record.Description,
			Location:        record.Location,
			Embedding:       record.Embedding,
			CreatedAt:       record.CreatedAt,
			UpdatedAt:       record.UpdatedAt,
		})
	}

	return candidates, nil
}
