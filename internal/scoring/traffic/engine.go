// internal/scoring/traffic/engine.go
package traffic

import (
	"context"
	"strings"

	"aso-keyword-service/internal/appstore"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/scoring/difficulty"
	"aso-keyword-service/internal/scoring/normalize"
)

// Component weights for the aggregated traffic score. The store's own
// autocomplete priority is by far the strongest volume signal.
const (
	weightSuggest  = 8.0
	weightRanked   = 3.0
	weightInstalls = 2.0
	weightLength   = 1.0
)

// Engine computes traffic reports from a search snapshot plus the
// store's suggestion and chart feeds.
type Engine struct {
	rankings RankingSource
	logger   logger.Logger
}

// NewEngine returns a traffic engine backed by the given chart source.
func NewEngine(rankings RankingSource, log logger.Logger) *Engine {
	return &Engine{rankings: rankings, logger: log}
}

// Compute scores how much search volume the keyword attracts. The
// suggestion component consumes the pre-fetched autocomplete hints;
// chart lookups go through the engine's ranking source.
func (e *Engine) Compute(ctx context.Context, keyword string, set appstore.SearchResultSet, hints []appstore.SuggestionEntry) (*Report, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, commonerrors.NewKeywordValidationError("keyword must not be empty")
	}
	if set.Len() == 0 {
		return nil, commonerrors.NewEmptyResultSetError(keyword)
	}

	top10 := set.Top10()

	report := &Report{
		Keyword:  keyword,
		Suggest:  ScoreSuggestion(keyword, hints),
		Ranked:   ScoreRankings(ctx, e.rankings, top10, e.logger),
		Installs: difficulty.Installs(top10),
		Length:   ScoreLength(keyword),
	}

	report.Score = normalize.Aggregate(map[string]normalize.Weighted{
		"suggest":  {Score: report.Suggest.Score, Weight: weightSuggest},
		"ranked":   {Score: report.Ranked.Score, Weight: weightRanked},
		"installs": {Score: report.Installs.Score, Weight: weightInstalls},
		"length":   {Score: report.Length.Score, Weight: weightLength},
	})
	e.round(report)

	e.logger.Debug("computed traffic score", map[string]interface{}{
		"keyword":  keyword,
		"score":    report.Score,
		"priority": report.Suggest.Priority,
	})

	return report, nil
}

func (e *Engine) round(r *Report) {
	r.Suggest.Score = normalize.Round2(r.Suggest.Score)
	r.Ranked.Score = normalize.Round2(r.Ranked.Score)
	r.Ranked.Raw = normalize.Round2(r.Ranked.Raw)
	r.Ranked.AvgRank = normalize.Round2(r.Ranked.AvgRank)
	r.Installs.Score = normalize.Round2(r.Installs.Score)
	r.Installs.Average = normalize.Round2(r.Installs.Average)
	r.Length.Score = normalize.Round2(r.Length.Score)
	r.Score = normalize.Round2(r.Score)
}
