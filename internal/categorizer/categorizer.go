package categorizer

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Categorizer assigns topical category labels to free text by scoring
// it against a fixed per-category keyword table. The same table also
// backs the shared AI-relevance filter used by every fetcher, so the
// taxonomy has a single source of truth.
type Categorizer struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp // keyword -> compiled word-boundary pattern
}

// New returns a Categorizer with an empty pattern cache.
func New() *Categorizer {
	return &Categorizer{patterns: make(map[string]*regexp.Regexp)}
}

type scored struct {
	category string
	score    int
}

// Categorize returns up to 3 category labels ranked by keyword score,
// or ["other"] when nothing matches. Ties keep taxonomy declaration
// order.
func (c *Categorizer) Categorize(text string) []string {
	ranked := c.rank(text)
	if len(ranked) == 0 {
		return []string{"other"}
	}
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	labels := make([]string, len(ranked))
	for i, s := range ranked {
		labels[i] = s.category
	}
	return labels
}

// Suggestion is a ranked category with its display metadata, used by
// the category-suggestion endpoint.
type Suggestion struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Info
}

// Suggest scores the text like Categorize but returns category
// metadata inline, capped at limit.
func (c *Categorizer) Suggest(text string, limit int) []Suggestion {
	if limit <= 0 {
		limit = 5
	}
	ranked := c.rank(text)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	suggestions := make([]Suggestion, len(ranked))
	for i, s := range ranked {
		suggestions[i] = Suggestion{
			Category: s.category,
			Score:    s.score,
			Info:     CategoryInfo(s.category),
		}
	}
	return suggestions
}

// IsRelevant reports whether the text passes the AI/ML keyword gate.
func (c *Categorizer) IsRelevant(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func (c *Categorizer) rank(text string) []scored {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var ranked []scored
	for _, category := range categoryOrder {
		score := c.scoreCategory(lowered, categoryKeywords[category])
		if score > 0 {
			ranked = append(ranked, scored{category: category, score: score})
		}
	}

	// Stable keeps declaration order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// scoreCategory counts whole-word matches for every keyword, weighting
// each hit by the keyword's word count so multi-word phrases dominate
// single-token noise.
func (c *Categorizer) scoreCategory(lowered string, keywords []string) int {
	score := 0
	for _, keyword := range keywords {
		matches := len(c.pattern(keyword).FindAllStringIndex(lowered, -1))
		if matches > 0 {
			weight := len(strings.Fields(keyword))
			score += matches * weight
		}
	}
	return score
}

func (c *Categorizer) pattern(keyword string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.patterns[keyword]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	c.patterns[keyword] = re
	return re
}
