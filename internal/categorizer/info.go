package categorizer

import "github.com/bilgisen/ainews/internal/models"

// Info is the display metadata for one category.
type Info struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

var categoryInfo = map[string]Info{
	"machine-learning": {
		DisplayName: "Machine Learning",
		Description: "General machine learning algorithms, techniques, and applications",
		Icon:        "🤖",
		Color:       "#3B82F6",
	},
	"deep-learning": {
		DisplayName: "Deep Learning",
		Description: "Neural networks, deep learning architectures, and frameworks",
		Icon:        "🧠",
		Color:       "#8B5CF6",
	},
	"computer-vision": {
		DisplayName: "Computer Vision",
		Description: "Image processing, object detection, and visual recognition",
		Icon:        "👁️",
		Color:       "#10B981",
	},
	"natural-language-processing": {
		DisplayName: "Natural Language Processing",
		Description: "Text processing, language models, and conversational AI",
		Icon:        "💬",
		Color:       "#F59E0B",
	},
	"robotics": {
		DisplayName: "Robotics",
		Description: "Robotic systems, automation, and autonomous agents",
		Icon:        "🤖",
		Color:       "#EF4444",
	},
	"reinforcement-learning": {
		DisplayName: "Reinforcement Learning",
		Description: "Agent-based learning, reward systems, and decision making",
		Icon:        "🎯",
		Color:       "#06B6D4",
	},
	"ai-tools": {
		DisplayName: "AI Tools & Frameworks",
		Description: "Development tools, libraries, and platforms for AI",
		Icon:        "🛠️",
		Color:       "#84CC16",
	},
	"research-papers": {
		DisplayName: "Research Papers",
		Description: "Academic publications, studies, and research findings",
		Icon:        "📄",
		Color:       "#6366F1",
	},
	"industry-news": {
		DisplayName: "Industry News",
		Description: "Business updates, product launches, and market trends",
		Icon:        "📈",
		Color:       "#EC4899",
	},
	"open-source": {
		DisplayName: "Open Source",
		Description: "Open source projects, repositories, and community contributions",
		Icon:        "🔓",
		Color:       "#14B8A6",
	},
	"datasets": {
		DisplayName: "Datasets",
		Description: "Training data, benchmarks, and data collections",
		Icon:        "📊",
		Color:       "#F97316",
	},
	"tutorials": {
		DisplayName: "Tutorials",
		Description: "Learning resources, guides, and educational content",
		Icon:        "📚",
		Color:       "#8B5CF6",
	},
	"conferences": {
		DisplayName: "Conferences",
		Description: "Academic conferences, workshops, and events",
		Icon:        "🎤",
		Color:       "#DC2626",
	},
	"other": {
		DisplayName: "Other",
		Description: "Miscellaneous AI-related content",
		Icon:        "📝",
		Color:       "#6B7280",
	},
}

// CategoryInfo returns display metadata for a category, falling back
// to the "other" entry for unknown names.
func CategoryInfo(name string) Info {
	if info, ok := categoryInfo[name]; ok {
		return info
	}
	return categoryInfo["other"]
}

// CategoryNames returns the taxonomy in declaration order.
func CategoryNames() []string {
	names := make([]string, len(categoryOrder))
	copy(names, categoryOrder)
	return names
}

// SeedCategories builds the fixed category documents stored at
// initialization time. Keywords are copied from the scoring table so
// the stored records and the classifier cannot drift apart.
func SeedCategories() []models.Category {
	seeds := make([]models.Category, 0, len(categoryOrder))
	for i, name := range categoryOrder {
		info := categoryInfo[name]
		keywords := make([]string, len(categoryKeywords[name]))
		copy(keywords, categoryKeywords[name])
		seeds = append(seeds, models.Category{
			Name:        name,
			DisplayName: info.DisplayName,
			Description: info.Description,
			Icon:        info.Icon,
			Color:       info.Color,
			Keywords:    keywords,
			IsActive:    true,
			SortOrder:   i + 1,
		})
	}
	return seeds
}
