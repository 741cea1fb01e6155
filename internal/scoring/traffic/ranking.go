// internal/scoring/traffic/ranking.go
package traffic

import (
	"context"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/scoring/normalize"
)

// Composite weighting inside the ranked component: how many of the top
// apps chart at all matters five times more than where they chart.
const (
	rankedCountWeight = 5.0
	avgRankWeight     = 1.0
	maxRankedApps     = 10
	maxChartPosition  = 100
)

// RankingSource yields a category leaderboard for a collection/genre
// pair.
type RankingSource interface {
	FetchRanking(ctx context.Context, collection appstore.Collection, genreID int) (appstore.CategoryRankingList, error)
}

type rankingKey struct {
	collection appstore.Collection
	genreID    int
}

// ScoreRankings checks each top app against the category chart it
// would appear on (free or paid, by primary genre). Charts are fetched
// once per collection/genre pair; a failed fetch is treated the same
// as the app being absent from the chart.
func ScoreRankings(ctx context.Context, source RankingSource, apps []appstore.AppRecord, log logger.Logger) RankedScore {
	charts := make(map[rankingKey]appstore.CategoryRankingList)

	var rankedCount int
	var rankSum float64
	for _, app := range apps {
		if app.PrimaryGenreID == 0 {
			continue
		}
		key := rankingKey{collection: appstore.CollectionFor(app.Free), genreID: app.PrimaryGenreID}
		chart, ok := charts[key]
		if !ok {
			fetched, err := source.FetchRanking(ctx, key.collection, key.genreID)
			if err != nil {
				log.WithError(err).Warn("category ranking fetch failed, treating apps as unranked", map[string]interface{}{
					"collection": string(key.collection),
					"genreId":    key.genreID,
				})
				fetched = appstore.CategoryRankingList{Collection: key.collection, GenreID: key.genreID}
			}
			charts[key] = fetched
			chart = fetched
		}
		if pos := chart.Position(app.AppID); pos > 0 {
			rankedCount++
			rankSum += float64(pos)
		}
	}

	result := RankedScore{RankedCount: rankedCount}
	if rankedCount == 0 {
		result.Score = normalize.MinScore
		return result
	}
	result.AvgRank = rankSum / float64(rankedCount)
	countScore := normalize.Z(float64(rankedCount), maxRankedApps)
	rankScore := normalize.Inverted(result.AvgRank, 1, maxChartPosition)
	result.Raw = countScore*rankedCountWeight + rankScore*avgRankWeight
	result.Score = result.Raw / (rankedCountWeight + avgRankWeight)
	return result
}
