// Package score rates how well a posting description matches a
// candidate's skills. Pure string arithmetic, no side effects.
package score

import (
	"math"
	"strings"
)

// Match returns the percentage (0-100) of profile skills that occur as
// case-insensitive substrings of the description. Empty skills or an
// empty description score zero.
func Match(skills []string, description string) int {
	if len(skills) == 0 || strings.TrimSpace(description) == "" {
		return 0
	}

	lowered := strings.ToLower(description)
	matched := 0
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if strings.Contains(lowered, skill) {
			matched++
		}
	}

	return int(math.Round(100 * float64(matched) / float64(len(skills))))
}

// A fixed vocabulary checked against descriptions for the
// required_skills field. Order is preserved in the output.
var techVocabulary = []string{
	"python", "java", "javascript", "typescript", "go", "react",
	"sql", "aws", "azure", "gcp", "docker", "kubernetes", "git",
	"machine learning", "ai", "data analysis", "pandas", "numpy",
	"tensorflow", "pytorch", "tableau", "power bi", "agile", "scrum",
}

const maxMentionedSkills = 10

// Mentioned returns vocabulary terms present in the description,
// title-cased, capped at ten.
func Mentioned(description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	lowered := strings.ToLower(description)
	var found []string
	for _, term := range techVocabulary {
		if !containsTerm(lowered, term) {
			continue
		}
		found = append(found, titleCase(term))
		if len(found) == maxMentionedSkills {
			break
		}
	}
	return found
}

// containsTerm requires word boundaries so "go" does not fire on
// "category" or "mongodb".
func containsTerm(haystack, term string) bool {
	index := 0
	for {
		at := strings.Index(haystack[index:], term)
		if at < 0 {
			return false
		}
		at += index
		end := at + len(term)
		beforeOK := at == 0 || !isWordByte(haystack[at-1])
		afterOK := end == len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		index = at + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func titleCase(term string) string {
	words := strings.Fields(term)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
