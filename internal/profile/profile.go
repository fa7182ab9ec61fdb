// Package profile builds the candidate profile the pipeline consumes,
// either from manual comma-separated input or from a profile file
// produced by the external resume extractor.
package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/jobmatch/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// The extractor caps its own output the same way; manual entry gets
// the same bounds so one oversized flag can't explode the query plan.
const (
	maxSkills    = 10
	maxInterests = 5
)

// FromFlags builds a profile from comma-separated skills and interests.
func FromFlags(skills, interests, location, experience string) models.Profile {
	return normalizeProfile(models.Profile{
		Skills:          splitList(skills),
		JobInterests:    splitList(interests),
		ExperienceLevel: models.NormalizeExperienceLevel(experience),
		Location:        strings.TrimSpace(location),
	})
}

// LoadFile reads a JSON5 profile file: {skills, job_interests,
// experience_level, location}.
func LoadFile(path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("read profile %q: %w", path, err)
	}

	var raw struct {
		Skills          []string `json:"skills"`
		JobInterests    []string `json:"job_interests"`
		ExperienceLevel string   `json:"experience_level"`
		Location        string   `json:"location"`
	}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return models.Profile{}, fmt.Errorf("parse profile %q: %w", path, err)
	}

	return normalizeProfile(models.Profile{
		Skills:          raw.Skills,
		JobInterests:    raw.JobInterests,
		ExperienceLevel: models.NormalizeExperienceLevel(raw.ExperienceLevel),
		Location:        strings.TrimSpace(raw.Location),
	}), nil
}

// Merge overlays non-empty flag values onto a loaded profile, so
// --location and friends still work alongside --profile-file.
func Merge(base models.Profile, overlay models.Profile) models.Profile {
	if len(overlay.Skills) > 0 {
		base.Skills = overlay.Skills
	}
	if len(overlay.JobInterests) > 0 {
		base.JobInterests = overlay.JobInterests
	}
	if overlay.Location != "" {
		base.Location = overlay.Location
	}
	if overlay.ExperienceLevel != "" && overlay.ExperienceLevel != models.ExperienceEntry {
		base.ExperienceLevel = overlay.ExperienceLevel
	}
	return normalizeProfile(base)
}

func normalizeProfile(p models.Profile) models.Profile {
	p.Skills = dedupeTerms(p.Skills, maxSkills)
	p.JobInterests = dedupeTerms(p.JobInterests, maxInterests)
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = models.ExperienceEntry
	}
	return p
}

// dedupeTerms trims, drops empties and case-insensitive repeats, and
// caps the list. Original casing of the first occurrence is kept.
func dedupeTerms(terms []string, max int) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		normalized := strings.ToLower(term)
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, term)
		if len(out) == max {
			break
		}
	}
	return out
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
