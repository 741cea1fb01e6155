// internal/scoring/difficulty/titlematch.go
package difficulty

import (
	"regexp"
	"strings"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/scoring/normalize"
)

// Weights applied to each match class before averaging. An exact
// substring match is worth four times a partial overlap.
const (
	exactMatchWeight   = 10.0
	broadMatchWeight   = 5.0
	partialMatchWeight = 2.5
)

var titleWordRe = regexp.MustCompile(`[a-z0-9]+`)

// ClassifyTitles buckets every app title against the keyword and
// converts the weighted match counts into a 1-10 score. Precedence is
// exact > broad > partial > none; each title lands in exactly one
// bucket.
func ClassifyTitles(keyword string, apps []appstore.AppRecord) TitleMatchScore {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	words := titleWordRe.FindAllString(keyword, -1)

	var result TitleMatchScore
	for _, app := range apps {
		title := strings.ToLower(app.Title)
		switch {
		case strings.Contains(title, keyword):
			result.Exact++
		case containsAll(title, words):
			result.Broad++
		case containsAny(title, words):
			result.Partial++
		default:
			result.None++
		}
	}

	total := len(apps)
	if total == 0 {
		result.Score = normalize.MinScore
		return result
	}
	raw := (exactMatchWeight*float64(result.Exact) +
		broadMatchWeight*float64(result.Broad) +
		partialMatchWeight*float64(result.Partial)) / float64(total)
	result.Score = normalize.Clip(raw)
	return result
}

func containsAll(title string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	set := titleWordSet(title)
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}

func containsAny(title string, words []string) bool {
	set := titleWordSet(title)
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}

func titleWordSet(title string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range titleWordRe.FindAllString(title, -1) {
		set[w] = true
	}
	return set
}
