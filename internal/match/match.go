// Package match implements the shared pre-filter, keyword extraction and
// relevance scoring used by every source adapter and by the API layer. All
// functions are pure; relevance is recomputed on demand and never stored.
package match

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"careertracker/internal/job"
	"careertracker/internal/profile"
)

// DefaultLocation is stored when no target country appears in a feed entry.
const DefaultLocation = "International"

// Relevance labels derived from the score.
const (
	LabelHigh = "Highly Relevant"
	LabelMid  = "Relevant"
	LabelLow  = "Low Relevance"
)

var titleCaser = cases.Title(language.English)

// PreFilter decides whether a candidate is worth keeping at the adapter
// boundary: the title must contain one of the preferred roles, or the combined
// text (title plus description) must contain one of the skills. Both checks
// are case-insensitive.
func PreFilter(title, text string, roles, skills []string) bool {
	titleLower := strings.ToLower(title)
	for _, role := range roles {
		if role != "" && strings.Contains(titleLower, strings.ToLower(role)) {
			return true
		}
	}

	textLower := strings.ToLower(text)
	for _, skill := range skills {
		if skill != "" && strings.Contains(textLower, strings.ToLower(skill)) {
			return true
		}
	}

	return false
}

// Keywords returns the skills whose lowercase form appears as a substring of
// the lowercased text. Profile order is preserved and duplicates are dropped.
func Keywords(text string, skills []string) []string {
	if text == "" {
		return nil
	}

	textLower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(skills))

	var tags []string
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		if strings.Contains(textLower, key) {
			seen[key] = struct{}{}
			tags = append(tags, skill)
		}
	}

	return tags
}

// InferLocation scans text for the first target country mentioned
// (case-insensitive, profile order) and returns it title-cased for display.
func InferLocation(text string, countries []string) string {
	textLower := strings.ToLower(text)
	for _, country := range countries {
		country = strings.TrimSpace(country)
		if country == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(country)) {
			return titleCaser.String(strings.ToLower(country))
		}
	}
	return DefaultLocation
}

// Score computes the relevance of a posting for a profile: +1 when the
// location exactly matches a target country, +1 per preferred role appearing
// in the title, plus the number of profile skills among the posting tags.
func Score(p profile.Snapshot, post job.Posting) int {
	score := 0

	for _, country := range p.TargetCountries {
		if post.Location == country {
			score++
			break
		}
	}

	titleLower := strings.ToLower(post.Title)
	for _, role := range p.PreferredRoles {
		if role != "" && strings.Contains(titleLower, strings.ToLower(role)) {
			score++
		}
	}

	skills := make(map[string]struct{}, len(p.Skills))
	for _, skill := range p.Skills {
		skills[skill] = struct{}{}
	}
	for _, tag := range post.Tags {
		if _, ok := skills[tag]; ok {
			score++
		}
	}

	return score
}

// Label maps a score to its display label.
func Label(score int) string {
	switch {
	case score >= 3:
		return LabelHigh
	case score >= 1:
		return LabelMid
	default:
		return LabelLow
	}
}
