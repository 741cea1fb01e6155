// internal/appstore/models.go
package appstore

import (
	"strings"
	"time"
)

// Collection identifies a category leaderboard by pricing model.
type Collection string

const (
	CollectionTopFree Collection = "TOP_FREE"
	CollectionTopPaid Collection = "TOP_PAID"
)

// AppRecord is an immutable snapshot of one store listing.
type AppRecord struct {
	AppID          string    `json:"appId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Summary        string    `json:"summary,omitempty"`
	Rating         *float64  `json:"rating,omitempty"`      // 0-5, nil when the store omits it
	ReviewCount    *int      `json:"reviewCount,omitempty"` // nil when the store omits it
	LastUpdated    time.Time `json:"lastUpdated,omitzero"`  // zero when the store omits it
	Free           bool      `json:"free"`
	PrimaryGenreID int       `json:"primaryGenreId"`
}

// HasRating reports whether the listing carries a rating value.
func (a AppRecord) HasRating() bool { return a.Rating != nil }

// HasReviewCount reports whether the listing carries a review count.
func (a AppRecord) HasReviewCount() bool { return a.ReviewCount != nil }

// HasLastUpdated reports whether the listing carries an update date.
func (a AppRecord) HasLastUpdated() bool { return !a.LastUpdated.IsZero() }

// SearchResultSet is a rank-ordered snapshot of up to 100 listings for
// one keyword. Rank is the 1-based position. The set is never mutated
// after creation.
type SearchResultSet struct {
	Keyword string      `json:"keyword"`
	Apps    []AppRecord `json:"apps"`
}

// NewSearchResultSet lowercases the keyword and caps the result list at
// 100 entries, preserving order.
func NewSearchResultSet(keyword string, apps []AppRecord) SearchResultSet {
	if len(apps) > 100 {
		apps = apps[:100]
	}
	return SearchResultSet{
		Keyword: strings.ToLower(strings.TrimSpace(keyword)),
		Apps:    apps,
	}
}

// Top10 returns the first 10 entries (or fewer).
func (s SearchResultSet) Top10() []AppRecord {
	if len(s.Apps) > 10 {
		return s.Apps[:10]
	}
	return s.Apps
}

// Top100 returns every entry in rank order.
func (s SearchResultSet) Top100() []AppRecord { return s.Apps }

// Len returns the number of apps in the set.
func (s SearchResultSet) Len() int { return len(s.Apps) }

// SuggestionEntry is one store search suggestion with its popularity priority.
type SuggestionEntry struct {
	Term     string `json:"term"`
	Priority int    `json:"priority"` // 0-10000
}

// CategoryRankingList is an ordered leaderboard of up to 100 app IDs
// for one (collection, genre) pair. Index 0 is rank 1.
type CategoryRankingList struct {
	Collection Collection `json:"collection"`
	GenreID    int        `json:"genreId"`
	AppIDs     []string   `json:"appIds"`
}

// Position returns the 1-based rank of appID, or 0 when absent.
func (c CategoryRankingList) Position(appID string) int {
	for i, id := range c.AppIDs {
		if id == appID {
			return i + 1
		}
	}
	return 0
}

// CollectionFor returns the leaderboard collection for a listing's
// pricing model.
func CollectionFor(free bool) Collection {
	if free {
		return CollectionTopFree
	}
	return CollectionTopPaid
}
