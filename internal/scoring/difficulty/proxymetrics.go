// internal/scoring/difficulty/proxymetrics.go
package difficulty

import (
	"time"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/scoring/normalize"
)

// Thresholds for the proxy components. Review counts stand in for
// install volume since the store does not expose installs directly.
const (
	reviewCountThreshold = 100000
	maxAgeDays           = 500
)

// Installs scores install volume through average review count across
// the given apps. Apps missing the field are excluded from the mean;
// if every app is missing it the component degrades to the floor score
// with InsufficientData set.
func Installs(apps []appstore.AppRecord) AverageScore {
	var sum float64
	var n int
	for _, app := range apps {
		if !app.HasReviewCount() {
			continue
		}
		sum += float64(*app.ReviewCount)
		n++
	}
	if n == 0 {
		return AverageScore{Score: normalize.MinScore, InsufficientData: true}
	}
	avg := sum / float64(n)
	return AverageScore{Average: avg, Score: normalize.Z(avg, reviewCountThreshold)}
}

// Rating scores the average user rating. Ratings live on a 0-5 scale,
// so the average is doubled onto 1-10.
func Rating(apps []appstore.AppRecord) AverageScore {
	var sum float64
	var n int
	for _, app := range apps {
		if !app.HasRating() {
			continue
		}
		sum += *app.Rating
		n++
	}
	if n == 0 {
		return AverageScore{Score: normalize.MinScore, InsufficientData: true}
	}
	avg := sum / float64(n)
	return AverageScore{Average: avg, Score: normalize.Clip(avg * 2)}
}

// Age scores update recency relative to asOf. Recently maintained apps
// signal active competition, so fewer days since update means a higher
// score.
func Age(apps []appstore.AppRecord, asOf time.Time) AgeScore {
	var sum float64
	var n int
	for _, app := range apps {
		if !app.HasLastUpdated() {
			continue
		}
		sum += asOf.Sub(app.LastUpdated).Hours() / 24
		n++
	}
	if n == 0 {
		return AgeScore{Score: normalize.MinScore, InsufficientData: true}
	}
	avg := sum / float64(n)
	return AgeScore{AverageDays: avg, Score: normalize.InvertedZ(avg, maxAgeDays)}
}
