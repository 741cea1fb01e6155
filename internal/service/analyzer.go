// internal/service/analyzer.go
package service

import (
	"context"
	"strings"
	"time"

	"aso-keyword-service/internal/appstore"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/common/metrics"
	"aso-keyword-service/internal/common/observability"
	"aso-keyword-service/internal/scoring/cache"
	"aso-keyword-service/internal/scoring/difficulty"
	"aso-keyword-service/internal/scoring/traffic"
)

// SearchSource fetches the ranked search results for a keyword.
type SearchSource interface {
	FetchTop100(ctx context.Context, keyword string) (appstore.SearchResultSet, error)
}

// SuggestSource fetches the store's autocomplete hints for a term.
type SuggestSource interface {
	FetchSuggestions(ctx context.Context, term string) ([]appstore.SuggestionEntry, error)
}

// KeywordScores is the per-keyword analysis outcome. Error carries the
// failure code when one side of the analysis could not be produced.
type KeywordScores struct {
	Keyword    string             `json:"keyword"`
	Difficulty *difficulty.Report `json:"difficulty,omitempty"`
	Traffic    *traffic.Report    `json:"traffic,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// AnalysisResult is the batch outcome for one analyze request.
type AnalysisResult struct {
	Metrics        []KeywordScores `json:"metrics"`
	Status         string          `json:"status"`
	TotalKeywords  int             `json:"total_keywords"`
	ProcessingTime float64         `json:"processing_time"`
}

// Batch status values.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Analyzer orchestrates a keyword batch: fetch the store snapshot,
// score difficulty and traffic, and cache the reports per snapshot
// day.
type Analyzer struct {
	search        SearchSource
	suggest       SuggestSource
	difficulty    *difficulty.Engine
	traffic       *traffic.Engine
	cache         *cache.ScoreCache
	observability *observability.Observability
	logger        logger.Logger
	now           func() time.Time
}

// NewAnalyzer wires the analysis pipeline. cache may be nil to run
// without Redis.
func NewAnalyzer(
	search SearchSource,
	suggest SuggestSource,
	diffEngine *difficulty.Engine,
	trafEngine *traffic.Engine,
	scoreCache *cache.ScoreCache,
	obs *observability.Observability,
	log logger.Logger,
) *Analyzer {
	return &Analyzer{
		search:        search,
		suggest:       suggest,
		difficulty:    diffEngine,
		traffic:       trafEngine,
		cache:         scoreCache,
		observability: obs,
		logger:        log,
		now:           time.Now,
	}
}

// Analyze scores every keyword in the batch sequentially. The
// timestamp is captured once so every keyword in the batch is scored
// against the same snapshot day. Individual keyword failures do not
// abort the batch.
func (a *Analyzer) Analyze(ctx context.Context, keywords []string) (*AnalysisResult, error) {
	if len(keywords) == 0 {
		return nil, commonerrors.NewRequestInvalidError("keywords must not be empty")
	}

	start := a.now()
	asOf := start
	result := &AnalysisResult{
		Metrics:       make([]KeywordScores, 0, len(keywords)),
		TotalKeywords: len(keywords),
	}

	failures := 0
	for _, raw := range keywords {
		keyword := strings.ToLower(strings.TrimSpace(raw))
		entry := a.analyzeOne(ctx, keyword, asOf)
		if entry.Error != "" {
			failures++
		}
		result.Metrics = append(result.Metrics, entry)
	}

	switch {
	case failures == 0:
		result.Status = StatusSuccess
	case failures == len(keywords):
		result.Status = StatusFailed
	default:
		result.Status = StatusPartial
	}
	result.ProcessingTime = a.now().Sub(start).Seconds()

	a.logger.Info("keyword batch analyzed", map[string]interface{}{
		"total":    result.TotalKeywords,
		"failures": failures,
		"status":   result.Status,
	})

	return result, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, keyword string, asOf time.Time) KeywordScores {
	started := a.now()
	entry := KeywordScores{Keyword: keyword}

	if keyword == "" {
		a.record(ctx, "invalid", started)
		entry.Error = string(commonerrors.ErrCodeKeywordValidationFailed)
		return entry
	}

	var diffReport difficulty.Report
	var trafReport traffic.Report
	diffHit := a.cacheGet(ctx, cache.KindDifficulty, keyword, asOf, &diffReport)
	trafHit := a.cacheGet(ctx, cache.KindTraffic, keyword, asOf, &trafReport)
	if diffHit && trafHit {
		a.record(ctx, "cached", started)
		entry.Difficulty = &diffReport
		entry.Traffic = &trafReport
		return entry
	}

	set, err := a.search.FetchTop100(ctx, keyword)
	if err != nil {
		a.logger.WithError(err).Error("search snapshot fetch failed", map[string]interface{}{"keyword": keyword})
		a.record(ctx, "error", started)
		entry.Error = string(commonerrors.CodeOf(err))
		return entry
	}

	if !diffHit {
		report, err := a.difficulty.Compute(ctx, keyword, set, asOf)
		if err != nil {
			a.record(ctx, "error", started)
			entry.Error = string(commonerrors.CodeOf(err))
			return entry
		}
		diffReport = *report
		a.cachePut(ctx, cache.KindDifficulty, keyword, asOf, report)
	}

	if !trafHit {
		hints, err := a.suggest.FetchSuggestions(ctx, keyword)
		if err != nil {
			// Suggestions are one traffic component; losing them is not
			// worth failing the keyword.
			a.logger.WithError(err).Warn("suggestion fetch failed, scoring without hints", map[string]interface{}{"keyword": keyword})
			hints = nil
		}
		report, err := a.traffic.Compute(ctx, keyword, set, hints)
		if err != nil {
			a.record(ctx, "error", started)
			entry.Error = string(commonerrors.CodeOf(err))
			return entry
		}
		trafReport = *report
		a.cachePut(ctx, cache.KindTraffic, keyword, asOf, report)
	}

	a.record(ctx, "success", started)
	entry.Difficulty = &diffReport
	entry.Traffic = &trafReport
	return entry
}

func (a *Analyzer) cacheGet(ctx context.Context, kind cache.Kind, keyword string, asOf time.Time, dest interface{}) bool {
	if a.cache == nil {
		return false
	}
	return a.cache.Get(ctx, kind, keyword, asOf, dest)
}

func (a *Analyzer) cachePut(ctx context.Context, kind cache.Kind, keyword string, asOf time.Time, value interface{}) {
	if a.cache == nil {
		return
	}
	a.cache.Put(ctx, kind, keyword, asOf, value)
}

func (a *Analyzer) record(ctx context.Context, status string, started time.Time) {
	elapsed := a.now().Sub(started)
	metrics.KeywordsAnalyzed.WithLabelValues(status).Inc()
	metrics.AnalysisDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	if a.observability != nil {
		a.observability.RecordAnalysis(ctx, status)
		a.observability.RecordAnalysisDuration(ctx, elapsed, status)
	}
}
