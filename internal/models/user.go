package models

import "time"

const readingHistoryLimit = 100

// Profile is the user-editable part of an account.
type Profile struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Preferences control feed personalization and notifications.
type Preferences struct {
	Categories         []string `json:"categories,omitempty"`
	Sources            []string `json:"sources,omitempty"`
	EmailNotifications bool     `json:"emailNotifications"`
	PushNotifications  bool     `json:"pushNotifications"`
	DigestFrequency    string   `json:"digestFrequency"` // daily|weekly|monthly|never
}

// Favorite is a bookmarked article with optional user annotations.
type Favorite struct {
	ArticleID string    `json:"articleId"`
	AddedAt   time.Time `json:"addedAt"`
	Tags      []string  `json:"tags,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// ReadingEntry records one article view in the reading history.
type ReadingEntry struct {
	ArticleID   string    `json:"articleId"`
	ReadAt      time.Time `json:"readAt"`
	ReadingTime int       `json:"readingTime"` // seconds
}

// User holds credentials, profile, preferences, favorites and a capped
// reading history. PasswordHash is never serialized.
type User struct {
	ID             string         `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	Profile        Profile        `json:"profile"`
	Preferences    Preferences    `json:"preferences"`
	Favorites      []Favorite     `json:"favorites"`
	ReadingHistory []ReadingEntry `json:"readingHistory"`
	IsActive       bool           `json:"isActive"`
	IsVerified     bool           `json:"isVerified"`
	Role           string         `json:"role"` // user|moderator|admin
	LastLoginAt    time.Time      `json:"lastLoginAt,omitempty"`
	LoginCount     int            `json:"loginCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// FullName returns "First Last" when both are set, the username otherwise.
func (u *User) FullName() string {
	if u.Profile.FirstName != "" && u.Profile.LastName != "" {
		return u.Profile.FirstName + " " + u.Profile.LastName
	}
	return u.Username
}

// AddToFavorites appends the article unless it is already bookmarked.
func (u *User) AddToFavorites(articleID string, tags []string, notes string) {
	for _, fav := range u.Favorites {
		if fav.ArticleID == articleID {
			return
		}
	}
	u.Favorites = append(u.Favorites, Favorite{
		ArticleID: articleID,
		AddedAt:   time.Now(),
		Tags:      tags,
		Notes:     notes,
	})
}

// RemoveFromFavorites drops the article from the favorites list.
func (u *User) RemoveFromFavorites(articleID string) {
	kept := u.Favorites[:0]
	for _, fav := range u.Favorites {
		if fav.ArticleID != articleID {
			kept = append(kept, fav)
		}
	}
	u.Favorites = kept
}

// AddToReadingHistory front-inserts the article, removing any earlier
// entry for the same article and keeping at most the 100 most recent.
func (u *User) AddToReadingHistory(articleID string, readingTime int) {
	kept := u.ReadingHistory[:0]
	for _, entry := range u.ReadingHistory {
		if entry.ArticleID != articleID {
			kept = append(kept, entry)
		}
	}
	u.ReadingHistory = append([]ReadingEntry{{
		ArticleID:   articleID,
		ReadAt:      time.Now(),
		ReadingTime: readingTime,
	}}, kept...)

	if len(u.ReadingHistory) > readingHistoryLimit {
		u.ReadingHistory = u.ReadingHistory[:readingHistoryLimit]
	}
}
