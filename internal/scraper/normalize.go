package scraper

import (
	"math"
	"regexp"
	"strings"

	"github.com/bilgisen/ainews/internal/models"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	imgSrcRe     = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"`)
)

// cleanText strips HTML tags and collapses whitespace.
func cleanText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// truncate cuts text at maxLen runes, appending an ellipsis when
// anything was dropped.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimSpace(string(runes[:maxLen])) + "..."
}

// readingTime estimates minutes at 200 words per minute, never less
// than one.
func readingTime(text string) int {
	if text == "" {
		return 1
	}
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// estimateDifficulty sniffs the text for audience markers.
func estimateDifficulty(text string) string {
	text = strings.ToLower(text)

	for _, kw := range []string{"expert", "phd", "cutting-edge", "cutting edge", "sota", "state-of-the-art", "breakthrough"} {
		if strings.Contains(text, kw) {
			return models.DifficultyExpert
		}
	}
	for _, kw := range []string{"advanced", "research", "paper", "deep dive"} {
		if strings.Contains(text, kw) {
			return models.DifficultyAdvanced
		}
	}
	for _, kw := range []string{"beginner", "intro", "introduction", "getting started", "eli5", "tutorial", "simple"} {
		if strings.Contains(text, kw) {
			return models.DifficultyBeginner
		}
	}
	return models.DifficultyIntermediate
}

// hasCodeContent reports whether the text suggests accompanying code.
func hasCodeContent(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range []string{
		"github", "code", "implementation", "repository", "script",
		"function", "import", "def ", "class ", "return ", "```",
		"library", "framework", "api",
	} {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// extractImageURL pulls the first <img src> out of an HTML fragment.
func extractImageURL(html string) string {
	if m := imgSrcRe.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// uniqueTags drops duplicates and empty entries, keeping order.
func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// slugify lowercases and replaces whitespace runs with hyphens.
func slugify(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// keywordTags returns the slugged keywords that occur in the text.
func keywordTags(text string, keywords []string) []string {
	text = strings.ToLower(text)
	var tags []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			tags = append(tags, slugify(kw))
		}
	}
	return tags
}
