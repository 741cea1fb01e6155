// internal/appstore/search.go
package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/httpclient"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/metrics"
)

const defaultSearchURL = "https://search.itunes.apple.com/WebObjects/MZStore.woa/wa/search"

// SearchClient fetches rank-ordered search results from the iTunes
// search endpoint. It performs no retries.
type SearchClient struct {
	baseURL  string
	country  string
	language string
	maxApps  int
	client   *httpclient.Client
	logger   logger.Logger
}

// NewSearchClient creates a search client for one store country.
// baseURL may be empty to use the production endpoint.
func NewSearchClient(baseURL, country, language string, maxApps int, client *httpclient.Client, log logger.Logger) *SearchClient {
	if baseURL == "" {
		baseURL = defaultSearchURL
	}
	if maxApps <= 0 || maxApps > 100 {
		maxApps = 100
	}
	return &SearchClient{
		baseURL:  baseURL,
		country:  country,
		language: language,
		maxApps:  maxApps,
		client:   client,
		logger:   log.WithFields(map[string]interface{}{"component": "appstore-search"}),
	}
}

// Wire shapes for the store search response.
type searchResponse struct {
	Bubbles []struct {
		Results []struct {
			ID int64 `json:"id"`
		} `json:"results"`
	} `json:"bubbles"`
	StorePlatformData struct {
		Lockup struct {
			Results map[string]lockupResult `json:"results"`
		} `json:"native-search-lockup-search"`
	} `json:"storePlatformData"`
}

type lockupResult struct {
	Name        string `json:"name"`
	Subtitle    string `json:"subtitle"`
	Description struct {
		Standard string `json:"standard"`
	} `json:"description"`
	UserRating *struct {
		Value       float64 `json:"value"`
		RatingCount int     `json:"ratingCount"`
	} `json:"userRating"`
	ReleaseDate string   `json:"releaseDate"`
	GenreIDs    []string `json:"genreIds"`
	Offers      []struct {
		Price float64 `json:"price"`
	} `json:"offers"`
}

// FetchTop100 retrieves the ordered result set for keyword.
func (c *SearchClient) FetchTop100(ctx context.Context, keyword string) (SearchResultSet, error) {
	storeFront, err := StoreFrontID(c.country)
	if err != nil {
		return SearchResultSet{}, err
	}

	u := fmt.Sprintf("%s?clientApplication=Software&media=software&term=%s",
		c.baseURL, url.QueryEscape(keyword))

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return SearchResultSet{}, commonerrors.NewStoreFetchFailedError(keyword, err)
	}
	req.Header.Set("X-Apple-Store-Front", fmt.Sprintf("%d,24 t:native", storeFront))
	req.Header.Set("Accept-Language", c.language)

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		metrics.StoreRequests.WithLabelValues("search", "error").Inc()
		return SearchResultSet{}, commonerrors.NewStoreFetchFailedError(keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.StoreRequests.WithLabelValues("search", strconv.Itoa(resp.StatusCode)).Inc()
		return SearchResultSet{}, commonerrors.NewStoreFetchFailedError(keyword,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	metrics.StoreRequests.WithLabelValues("search", "200").Inc()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchResultSet{}, commonerrors.NewStoreParseFailedError(err)
	}

	apps := c.toRecords(payload)
	c.logger.Debug("search results fetched", map[string]interface{}{
		"keyword": keyword,
		"apps":    len(apps),
	})

	return NewSearchResultSet(keyword, apps), nil
}

// toRecords preserves the rank order from the bubbles list and joins it
// with the lockup details.
func (c *SearchClient) toRecords(payload searchResponse) []AppRecord {
	if len(payload.Bubbles) == 0 {
		return nil
	}

	details := payload.StorePlatformData.Lockup.Results
	var apps []AppRecord
	for _, entry := range payload.Bubbles[0].Results {
		if len(apps) >= c.maxApps {
			break
		}
		id := strconv.FormatInt(entry.ID, 10)
		info, ok := details[id]
		if !ok {
			continue
		}
		apps = append(apps, toRecord(id, info))
	}
	return apps
}

func toRecord(id string, info lockupResult) AppRecord {
	rec := AppRecord{
		AppID:       id,
		Title:       info.Name,
		Description: info.Description.Standard,
		Summary:     info.Subtitle,
		Free:        isFree(info),
	}

	if info.UserRating != nil {
		rating := info.UserRating.Value
		count := info.UserRating.RatingCount
		rec.Rating = &rating
		rec.ReviewCount = &count
	}

	if info.ReleaseDate != "" {
		if t, err := time.Parse(time.RFC3339, info.ReleaseDate); err == nil {
			rec.LastUpdated = t
		}
	}

	if len(info.GenreIDs) > 0 {
		if genre, err := strconv.Atoi(info.GenreIDs[0]); err == nil {
			rec.PrimaryGenreID = genre
		}
	}

	return rec
}

func isFree(info lockupResult) bool {
	if len(info.Offers) == 0 {
		return true
	}
	return info.Offers[0].Price == 0
}
