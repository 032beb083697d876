package middleware

import (
	"encoding/json"
	"strings"

	"github.com/bilgisen/ainews/internal/localize"
	"github.com/gofiber/fiber/v2"
)

var suggestionTypeNames = map[string]string{
	"title":    "标题",
	"tag":      "标签",
	"category": "分类",
}

// NewLocalizer rewrites JSON responses for Chinese readers, attaching
// translated summaries, tags and display names next to the original
// fields. The service fronts a Chinese-language site, so every client
// gets the localized fields; canonical fields are never touched and
// any failure leaves the response as-is.
func NewLocalizer(tr *localize.Translator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			return nil
		}
		contentType := string(c.Response().Header.ContentType())
		if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return nil
		}

		var data map[string]interface{}
		if err := json.Unmarshal(c.Response().Body(), &data); err != nil {
			return nil
		}

		localizeData(tr, data)

		body, err := json.Marshal(data)
		if err != nil {
			return nil
		}
		c.Response().SetBodyRaw(body)
		return nil
	}
}

func localizeData(tr *localize.Translator, data map[string]interface{}) {
	if article, ok := data["article"].(map[string]interface{}); ok {
		localizeArticle(tr, article)
	}
	if articles, ok := data["articles"].([]interface{}); ok {
		for _, item := range articles {
			if article, ok := item.(map[string]interface{}); ok {
				localizeArticle(tr, article)
			}
		}
	}
	if category, ok := data["category"].(map[string]interface{}); ok {
		localizeCategory(tr, category)
	}
	if categories, ok := data["categories"].([]interface{}); ok {
		for _, item := range categories {
			if category, ok := item.(map[string]interface{}); ok {
				localizeCategory(tr, category)
			}
		}
	}
	if suggestions, ok := data["suggestions"].([]interface{}); ok {
		for _, item := range suggestions {
			if suggestion, ok := item.(map[string]interface{}); ok {
				localizeSuggestion(tr, suggestion)
			}
		}
	}
}

func localizeArticle(tr *localize.Translator, article map[string]interface{}) {
	title, _ := article["title"].(string)
	description, _ := article["description"].(string)
	content, _ := article["content"].(string)
	article["chineseSummary"] = tr.GenerateSummary(title, description, content)

	if tags := stringSlice(article["tags"]); tags != nil {
		article["chineseTags"] = tr.TranslateTags(tags)
	}
	if metadata, ok := article["metadata"].(map[string]interface{}); ok {
		if difficulty, ok := metadata["difficulty"].(string); ok && difficulty != "" {
			article["chineseDifficulty"] = tr.TranslateDifficulty(difficulty)
		}
	}
	if source, ok := article["source"].(map[string]interface{}); ok {
		if sourceType, ok := source["type"].(string); ok && sourceType != "" {
			article["chineseSourceType"] = tr.TranslateSourceType(sourceType)
		}
	}
	if categories := stringSlice(article["categories"]); categories != nil {
		chinese := make([]string, len(categories))
		for i, name := range categories {
			chinese[i] = tr.CategoryDisplayName(name)
		}
		article["chineseCategories"] = chinese
	}
}

func localizeCategory(tr *localize.Translator, category map[string]interface{}) {
	name, _ := category["name"].(string)
	if name == "" {
		return
	}
	if display := tr.CategoryDisplayName(name); display != name {
		category["displayName"] = display
	}
}

func localizeSuggestion(tr *localize.Translator, suggestion map[string]interface{}) {
	if kind, ok := suggestion["type"].(string); ok {
		if text, ok := suggestionTypeNames[kind]; ok {
			suggestion["typeText"] = text
		}
	}
	if text, ok := suggestion["text"].(string); ok && text != "" {
		suggestion["translatedText"] = tr.TranslateTerms(text)
	}
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
