// internal/appstore/rankings.go
package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/httpclient"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/metrics"
)

const defaultRSSURL = "https://itunes.apple.com"

// RankingsClient fetches category leaderboards from the iTunes RSS feeds.
type RankingsClient struct {
	baseURL string
	country string
	client  *httpclient.Client
	logger  logger.Logger
}

// NewRankingsClient creates a rankings client. baseURL may be empty to
// use the production endpoint.
func NewRankingsClient(baseURL, country string, client *httpclient.Client, log logger.Logger) *RankingsClient {
	if baseURL == "" {
		baseURL = defaultRSSURL
	}
	return &RankingsClient{
		baseURL: baseURL,
		country: country,
		client:  client,
		logger:  log.WithFields(map[string]interface{}{"component": "appstore-rankings"}),
	}
}

// Wire shape for the RSS leaderboard feed.
type rssFeed struct {
	Feed struct {
		Entry []struct {
			ID struct {
				Attributes struct {
					AppID string `json:"im:id"`
				} `json:"attributes"`
			} `json:"id"`
		} `json:"entry"`
	} `json:"feed"`
}

func feedName(collection Collection) string {
	if collection == CollectionTopPaid {
		return "toppaidapplications"
	}
	return "topfreeapplications"
}

// FetchRanking retrieves the top-100 leaderboard for one
// (collection, genre) pair. A missing or empty feed yields an empty
// list, which downstream scoring treats as "not ranked".
func (c *RankingsClient) FetchRanking(ctx context.Context, collection Collection, genreID int) (CategoryRankingList, error) {
	u := fmt.Sprintf("%s/%s/rss/%s/limit=100/genre=%d/json",
		c.baseURL, c.country, feedName(collection), genreID)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return CategoryRankingList{}, commonerrors.NewRankingFetchFailedError(string(collection), genreID, err)
	}

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		metrics.StoreRequests.WithLabelValues("rss", "error").Inc()
		return CategoryRankingList{}, commonerrors.NewRankingFetchFailedError(string(collection), genreID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Unknown genre: absence signal, not an error.
		metrics.StoreRequests.WithLabelValues("rss", "404").Inc()
		return CategoryRankingList{Collection: collection, GenreID: genreID}, nil
	}
	if resp.StatusCode != http.StatusOK {
		metrics.StoreRequests.WithLabelValues("rss", strconv.Itoa(resp.StatusCode)).Inc()
		return CategoryRankingList{}, commonerrors.NewRankingFetchFailedError(string(collection), genreID,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	metrics.StoreRequests.WithLabelValues("rss", "200").Inc()

	var payload rssFeed
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CategoryRankingList{}, commonerrors.NewStoreParseFailedError(err)
	}

	list := CategoryRankingList{Collection: collection, GenreID: genreID}
	for _, entry := range payload.Feed.Entry {
		if len(list.AppIDs) >= 100 {
			break
		}
		if entry.ID.Attributes.AppID != "" {
			list.AppIDs = append(list.AppIDs, entry.ID.Attributes.AppID)
		}
	}

	c.logger.Debug("category ranking fetched", map[string]interface{}{
		"collection": collection,
		"genreId":    genreID,
		"apps":       len(list.AppIDs),
	})
	return list, nil
}
