// internal/scoring/difficulty/engine.go
package difficulty

import (
	"context"
	"strings"
	"time"

	"aso-keyword-service/internal/appstore"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/scoring/normalize"
)

// Component weights for the aggregated difficulty score. Install
// volume dominates, update age matters least.
const (
	weightTitleMatches = 4.0
	weightCompetitors  = 3.0
	weightInstalls     = 5.0
	weightRating       = 2.0
	weightAge          = 1.0
)

// Engine computes difficulty reports from a search result snapshot.
type Engine struct {
	logger  logger.Logger
	workers int
}

// NewEngine returns a difficulty engine. workers bounds the competitor
// extraction pool.
func NewEngine(log logger.Logger, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{logger: log, workers: workers}
}

// Compute scores how hard it is to rank for the keyword given the
// store snapshot. Title, installs, rating and age look at the top ten
// ranked apps; competitor extraction scans the full set. asOf anchors
// the age component so repeated runs over the same snapshot agree.
func (e *Engine) Compute(ctx context.Context, keyword string, set appstore.SearchResultSet, asOf time.Time) (*Report, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, commonerrors.NewKeywordValidationError("keyword must not be empty")
	}
	if set.Len() == 0 {
		return nil, commonerrors.NewEmptyResultSetError(keyword)
	}

	top10 := set.Top10()

	report := &Report{
		Keyword:      keyword,
		TitleMatches: ClassifyTitles(keyword, top10),
		Competitors:  CountCompetitors(ctx, keyword, set.Top100(), e.workers),
		Installs:     Installs(top10),
		Rating:       Rating(top10),
		Age:          Age(top10, asOf),
	}

	report.Score = normalize.Aggregate(map[string]normalize.Weighted{
		"titleMatches": {Score: report.TitleMatches.Score, Weight: weightTitleMatches},
		"competitors":  {Score: report.Competitors.Score, Weight: weightCompetitors},
		"installs":     {Score: report.Installs.Score, Weight: weightInstalls},
		"rating":       {Score: report.Rating.Score, Weight: weightRating},
		"age":          {Score: report.Age.Score, Weight: weightAge},
	})
	e.round(report)

	e.logger.Debug("computed difficulty score", map[string]interface{}{
		"keyword":     keyword,
		"score":       report.Score,
		"competitors": report.Competitors.Count,
	})

	return report, nil
}

// round snaps every reported number to two decimals. Intermediate math
// stays full precision; only the report boundary rounds.
func (e *Engine) round(r *Report) {
	r.TitleMatches.Score = normalize.Round2(r.TitleMatches.Score)
	r.Competitors.Score = normalize.Round2(r.Competitors.Score)
	r.Installs.Score = normalize.Round2(r.Installs.Score)
	r.Installs.Average = normalize.Round2(r.Installs.Average)
	r.Rating.Score = normalize.Round2(r.Rating.Score)
	r.Rating.Average = normalize.Round2(r.Rating.Average)
	r.Age.Score = normalize.Round2(r.Age.Score)
	r.Age.AverageDays = normalize.Round2(r.Age.AverageDays)
	r.Score = normalize.Round2(r.Score)
}
