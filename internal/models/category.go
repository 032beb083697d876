package models

import "time"

// Category is a topical bucket articles are classified into. The name
// is a lowercase slug and unique; categories form an optional tree via
// ParentCategory/Subcategories. Seeded once at startup, rarely mutated.
type Category struct {
	Name           string    `json:"name"`
	DisplayName    string    `json:"displayName"`
	Description    string    `json:"description,omitempty"`
	Icon           string    `json:"icon,omitempty"`
	Color          string    `json:"color,omitempty"`
	ParentCategory string    `json:"parentCategory,omitempty"`
	Subcategories  []string  `json:"subcategories,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	IsActive       bool      `json:"isActive"`
	SortOrder      int       `json:"sortOrder"`
	ArticleCount   int       `json:"articleCount"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}
