package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddToFavoritesSkipsDuplicates(t *testing.T) {
	u := &User{}

	u.AddToFavorites("a1", []string{"ml"}, "read later")
	u.AddToFavorites("a1", nil, "")
	u.AddToFavorites("a2", nil, "")

	assert.Len(t, u.Favorites, 2)
	assert.Equal(t, "a1", u.Favorites[0].ArticleID)
	assert.Equal(t, []string{"ml"}, u.Favorites[0].Tags)
}

func TestRemoveFromFavorites(t *testing.T) {
	u := &User{}
	u.AddToFavorites("a1", nil, "")
	u.AddToFavorites("a2", nil, "")

	u.RemoveFromFavorites("a1")

	assert.Len(t, u.Favorites, 1)
	assert.Equal(t, "a2", u.Favorites[0].ArticleID)

	// Removing something absent is a no-op.
	u.RemoveFromFavorites("a1")
	assert.Len(t, u.Favorites, 1)
}

func TestReadingHistoryFrontInsertAndDedup(t *testing.T) {
	u := &User{}

	u.AddToReadingHistory("a1", 30)
	u.AddToReadingHistory("a2", 60)
	u.AddToReadingHistory("a1", 90)

	assert.Len(t, u.ReadingHistory, 2)
	assert.Equal(t, "a1", u.ReadingHistory[0].ArticleID)
	assert.Equal(t, 90, u.ReadingHistory[0].ReadingTime)
	assert.Equal(t, "a2", u.ReadingHistory[1].ArticleID)
}

func TestReadingHistoryCap(t *testing.T) {
	u := &User{}
	for i := 0; i < 150; i++ {
		u.AddToReadingHistory(fmt.Sprintf("article-%d", i), 0)
	}

	assert.Len(t, u.ReadingHistory, 100)
	assert.Equal(t, "article-149", u.ReadingHistory[0].ArticleID)
}

func TestFullName(t *testing.T) {
	u := &User{Username: "ayse"}
	assert.Equal(t, "ayse", u.FullName())

	u.Profile.FirstName = "Ayşe"
	u.Profile.LastName = "Demir"
	assert.Equal(t, "Ayşe Demir", u.FullName())
}
