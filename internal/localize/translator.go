package localize

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Translator attaches Chinese display strings to outgoing payloads.
// It is a term-table substitution, not real machine translation: known
// technical phrases are replaced, everything else passes through.
type Translator struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
	ordered  []string // term keys, longest first so phrases win over sub-terms
}

// NewTranslator builds a Translator over the fixed tech-term table.
func NewTranslator() *Translator {
	ordered := make([]string, 0, len(techTerms))
	for term := range techTerms {
		ordered = append(ordered, term)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	return &Translator{
		patterns: make(map[string]*regexp.Regexp),
		ordered:  ordered,
	}
}

// TranslateTerms replaces known English technical terms in the text
// with their Chinese equivalents.
func (t *Translator) TranslateTerms(text string) string {
	if text == "" {
		return text
	}
	for _, term := range t.ordered {
		text = t.pattern(term).ReplaceAllString(text, techTerms[term])
	}
	return text
}

// GenerateSummary builds a short Chinese summary from the canonical
// title and description. Falls back to the untranslated description
// when nothing in the term table applies.
func (t *Translator) GenerateSummary(title, description, content string) string {
	full := strings.TrimSpace(strings.Join([]string{title, description, content}, " "))
	if full == "" {
		return "暂无描述"
	}

	// Short descriptions that already contain Chinese are kept as-is.
	if description != "" && len([]rune(description)) < 200 && containsHan(description) {
		return description
	}

	summary := t.TranslateTerms(description)
	if summary == "" {
		summary = t.TranslateTerms(title)
	}
	if runes := []rune(summary); len(runes) > 300 {
		summary = string(runes[:300]) + "..."
	}
	return summary
}

// TranslateTags translates each tag via the term table, keeping tags
// that are already Chinese or have no translation.
func (t *Translator) TranslateTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		if containsHan(tag) {
			out[i] = tag
			continue
		}
		out[i] = t.TranslateTerms(tag)
	}
	return out
}

// TranslateDifficulty maps a difficulty tier to its Chinese label.
func (t *Translator) TranslateDifficulty(difficulty string) string {
	if zh, ok := difficultyNames[difficulty]; ok {
		return zh
	}
	return difficulty
}

// TranslateSourceType maps a source type to its Chinese label.
func (t *Translator) TranslateSourceType(sourceType string) string {
	if zh, ok := sourceTypeNames[sourceType]; ok {
		return zh
	}
	return sourceType
}

// CategoryDisplayName returns the Chinese name of a category slug,
// or the slug itself when unknown.
func (t *Translator) CategoryDisplayName(name string) string {
	if zh, ok := categoryNames[name]; ok {
		return zh
	}
	return name
}

func (t *Translator) pattern(term string) *regexp.Regexp {
	t.mu.Lock()
	defer t.mu.Unlock()
	if re, ok := t.patterns[term]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	t.patterns[term] = re
	return re
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
