// internal/scoring/difficulty/competitors.go
package difficulty

import (
	"context"
	"strings"
	"sync"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/scoring/keywords"
	"aso-keyword-service/internal/scoring/normalize"
)

// competitorThreshold saturates the competitor score: one hundred apps
// actively targeting the keyword maps to the maximum difficulty.
const competitorThreshold = 100

// competitorDepth is how far into each app's extracted keyword list we
// look for the target keyword.
const competitorDepth = 10

// CountCompetitors runs keyword extraction over every app's title and
// description and counts the apps whose top extracted phrases include
// the target keyword. Extraction is CPU-bound, so the work is fanned
// out over a bounded pool.
func CountCompetitors(ctx context.Context, keyword string, apps []appstore.AppRecord, workers int) CompetitorScore {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan appstore.AppRecord)
	hits := make(chan bool, len(apps))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for app := range jobs {
				extracted := keywords.Extract(app.Title, app.Description)
				hits <- extracted.Contains(keyword, competitorDepth)
			}
		}()
	}

	for _, app := range apps {
		select {
		case <-ctx.Done():
			// Stop feeding; workers drain what is already queued.
		case jobs <- app:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	close(hits)

	var result CompetitorScore
	for hit := range hits {
		if hit {
			result.Count++
		}
	}
	result.Score = normalize.Z(float64(result.Count), competitorThreshold)
	return result
}
