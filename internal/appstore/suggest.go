// internal/appstore/suggest.go
package appstore

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/httpclient"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/metrics"
)

const defaultHintsURL = "https://search.itunes.apple.com/WebObjects/MZSearchHints.woa/wa/hints"

// SuggestClient fetches search suggestions with their store priorities
// from the iTunes hints endpoint.
type SuggestClient struct {
	baseURL string
	country string
	client  *httpclient.Client
	logger  logger.Logger
}

// NewSuggestClient creates a suggestion client. baseURL may be empty to
// use the production endpoint.
func NewSuggestClient(baseURL, country string, client *httpclient.Client, log logger.Logger) *SuggestClient {
	if baseURL == "" {
		baseURL = defaultHintsURL
	}
	return &SuggestClient{
		baseURL: baseURL,
		country: country,
		client:  client,
		logger:  log.WithFields(map[string]interface{}{"component": "appstore-suggest"}),
	}
}

// FetchSuggestions retrieves the suggestion list for a query term. An
// empty list is a valid answer, not an error.
func (c *SuggestClient) FetchSuggestions(ctx context.Context, term string) ([]SuggestionEntry, error) {
	storeFront, err := StoreFrontID(c.country)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s?clientApplication=Software&term=%s", c.baseURL, url.QueryEscape(term))
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, commonerrors.NewSuggestFetchFailedError(term, err)
	}
	req.Header.Set("X-Apple-Store-Front", fmt.Sprintf("%d,24 t:native", storeFront))

	resp, err := c.client.DoWithContext(ctx, req)
	if err != nil {
		metrics.StoreRequests.WithLabelValues("hints", "error").Inc()
		return nil, commonerrors.NewSuggestFetchFailedError(term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.StoreRequests.WithLabelValues("hints", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, commonerrors.NewSuggestFetchFailedError(term,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	metrics.StoreRequests.WithLabelValues("hints", "200").Inc()

	entries, err := parseHintsPlist(resp.Body)
	if err != nil {
		return nil, commonerrors.NewStoreParseFailedError(err)
	}

	c.logger.Debug("suggestions fetched", map[string]interface{}{
		"term":        term,
		"suggestions": len(entries),
	})
	return entries, nil
}

// parseHintsPlist walks the hints plist and collects term/priority
// pairs. The payload is a plist dict whose "hints" key holds an array
// of dicts with "term" (string) and "priority" (integer) keys.
func parseHintsPlist(r io.Reader) ([]SuggestionEntry, error) {
	decoder := xml.NewDecoder(r)

	var entries []SuggestionEntry
	var current SuggestionEntry
	var pendingKey string
	inHintDict := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse hints plist: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "dict":
				if inHintDict > 0 {
					inHintDict++
				}
			case "array":
				if pendingKey == "hints" {
					inHintDict = 1
					pendingKey = ""
				}
			case "key", "string", "integer":
				var text string
				if err := decoder.DecodeElement(&text, &el); err != nil {
					return nil, fmt.Errorf("parse hints plist: %w", err)
				}
				switch el.Name.Local {
				case "key":
					pendingKey = text
				case "string":
					if inHintDict > 1 && pendingKey == "term" {
						current.Term = strings.ToLower(text)
					}
					pendingKey = ""
				case "integer":
					if inHintDict > 1 && pendingKey == "priority" {
						if p, err := strconv.Atoi(text); err == nil {
							current.Priority = p
						}
					}
					pendingKey = ""
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "dict":
				if inHintDict > 1 {
					inHintDict--
					if inHintDict == 1 && current.Term != "" {
						entries = append(entries, current)
						current = SuggestionEntry{}
					}
				}
			case "array":
				if inHintDict == 1 {
					inHintDict = 0
				}
			}
		}
	}

	return entries, nil
}
