package models

import "strings"

// ExperienceLevel is the candidate seniority bucket.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// NormalizeExperienceLevel maps free-form input onto a known level.
// Unknown values fall back to entry.
func NormalizeExperienceLevel(value string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ExperienceMid), "middle", "intermediate":
		return ExperienceMid
	case string(ExperienceSenior), "sr":
		return ExperienceSenior
	default:
		return ExperienceEntry
	}
}

// Profile is the candidate profile consumed read-only by the pipeline.
// It is produced by the external profile extractor or manual entry.
type Profile struct {
	Skills          []string        `json:"skills"`
	JobInterests    []string        `json:"job_interests"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Location        string          `json:"location,omitempty"`
}
