// internal/service/analyzer_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/common/config"
	"aso-keyword-service/internal/common/database"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
	"aso-keyword-service/internal/scoring/cache"
	"aso-keyword-service/internal/scoring/difficulty"
	"aso-keyword-service/internal/scoring/traffic"
)

type fakeSearch struct {
	sets  map[string]appstore.SearchResultSet
	fails map[string]error
	calls int
}

func (f *fakeSearch) FetchTop100(_ context.Context, keyword string) (appstore.SearchResultSet, error) {
	f.calls++
	if err, ok := f.fails[keyword]; ok {
		return appstore.SearchResultSet{}, err
	}
	return f.sets[keyword], nil
}

type fakeSuggest struct {
	hints []appstore.SuggestionEntry
	err   error
}

func (f *fakeSuggest) FetchSuggestions(_ context.Context, _ string) ([]appstore.SuggestionEntry, error) {
	return f.hints, f.err
}

type fakeCharts struct{}

func (fakeCharts) FetchRanking(_ context.Context, collection appstore.Collection, genreID int) (appstore.CategoryRankingList, error) {
	return appstore.CategoryRankingList{Collection: collection, GenreID: genreID}, nil
}

func rating(v float64) *float64 { return &v }
func reviews(v int) *int        { return &v }

func snapshotFor(keyword string) appstore.SearchResultSet {
	apps := make([]appstore.AppRecord, 10)
	for i := range apps {
		apps[i] = appstore.AppRecord{
			AppID:          "app-" + keyword,
			Title:          "Sleep Sounds",
			Description:    "Relaxing sleep sounds for deep rest.",
			Rating:         rating(4.5),
			ReviewCount:    reviews(1000),
			LastUpdated:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Free:           true,
			PrimaryGenreID: 6013,
		}
	}
	return appstore.SearchResultSet{Keyword: keyword, Apps: apps}
}

func newTestAnalyzer(t *testing.T, search *fakeSearch, suggest *fakeSuggest, scoreCache *cache.ScoreCache) *Analyzer {
	t.Helper()
	log := logger.NewNoOpLogger()
	a := NewAnalyzer(
		search,
		suggest,
		difficulty.NewEngine(log, 2),
		traffic.NewEngine(fakeCharts{}, log),
		scoreCache,
		nil,
		log,
	)
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestAnalyze_EmptyBatchRejected(t *testing.T) {
	a := newTestAnalyzer(t, &fakeSearch{}, &fakeSuggest{}, nil)

	_, err := a.Analyze(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeRequestInvalid, commonerrors.CodeOf(err))
}

func TestAnalyze_SingleKeyword(t *testing.T) {
	search := &fakeSearch{sets: map[string]appstore.SearchResultSet{
		"sleep sounds": snapshotFor("sleep sounds"),
	}}
	suggest := &fakeSuggest{hints: []appstore.SuggestionEntry{{Term: "sleep sounds", Priority: 4000}}}
	a := newTestAnalyzer(t, search, suggest, nil)

	result, err := a.Analyze(context.Background(), []string{"  Sleep Sounds "})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 1, result.TotalKeywords)
	require.Len(t, result.Metrics, 1)

	entry := result.Metrics[0]
	assert.Equal(t, "sleep sounds", entry.Keyword)
	require.NotNil(t, entry.Difficulty)
	require.NotNil(t, entry.Traffic)
	assert.Empty(t, entry.Error)
	assert.InDelta(t, 5.5, entry.Traffic.Suggest.Score, 1e-9)
	assert.InDelta(t, 1.09, entry.Difficulty.Installs.Score, 1e-9)
}

func TestAnalyze_PartialFailure(t *testing.T) {
	search := &fakeSearch{
		sets: map[string]appstore.SearchResultSet{
			"sleep sounds": snapshotFor("sleep sounds"),
		},
		fails: map[string]error{
			"yoga": commonerrors.NewStoreFetchFailedError("yoga", assert.AnError),
		},
	}
	a := newTestAnalyzer(t, search, &fakeSuggest{}, nil)

	result, err := a.Analyze(context.Background(), []string{"sleep sounds", "yoga"})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	require.Len(t, result.Metrics, 2)
	assert.Empty(t, result.Metrics[0].Error)
	assert.Equal(t, string(commonerrors.ErrCodeStoreFetchFailed), result.Metrics[1].Error)
	assert.Nil(t, result.Metrics[1].Difficulty)
}

func TestAnalyze_AllFailed(t *testing.T) {
	search := &fakeSearch{fails: map[string]error{
		"yoga": commonerrors.NewStoreFetchFailedError("yoga", assert.AnError),
	}}
	a := newTestAnalyzer(t, search, &fakeSuggest{}, nil)

	result, err := a.Analyze(context.Background(), []string{"yoga"})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, result.Status)
}

func TestAnalyze_BlankKeywordMarkedInvalid(t *testing.T) {
	search := &fakeSearch{sets: map[string]appstore.SearchResultSet{
		"sleep sounds": snapshotFor("sleep sounds"),
	}}
	a := newTestAnalyzer(t, search, &fakeSuggest{}, nil)

	result, err := a.Analyze(context.Background(), []string{"sleep sounds", "   "})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, string(commonerrors.ErrCodeKeywordValidationFailed), result.Metrics[1].Error)
	// The blank keyword never reaches the store.
	assert.Equal(t, 1, search.calls)
}

func TestAnalyze_SuggestFailureIsNonFatal(t *testing.T) {
	search := &fakeSearch{sets: map[string]appstore.SearchResultSet{
		"sleep sounds": snapshotFor("sleep sounds"),
	}}
	suggest := &fakeSuggest{err: assert.AnError}
	a := newTestAnalyzer(t, search, suggest, nil)

	result, err := a.Analyze(context.Background(), []string{"sleep sounds"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	require.NotNil(t, result.Metrics[0].Traffic)
	assert.Equal(t, 0, result.Metrics[0].Traffic.Suggest.Priority)
	assert.Equal(t, 1.0, result.Metrics[0].Traffic.Suggest.Score)
}

func TestAnalyze_SecondRunServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	scoreCache := cache.NewScoreCache(rdb, time.Hour, logger.NewNoOpLogger())

	search := &fakeSearch{sets: map[string]appstore.SearchResultSet{
		"sleep sounds": snapshotFor("sleep sounds"),
	}}
	suggest := &fakeSuggest{hints: []appstore.SuggestionEntry{{Term: "sleep sounds", Priority: 4000}}}
	a := newTestAnalyzer(t, search, suggest, scoreCache)

	first, err := a.Analyze(context.Background(), []string{"sleep sounds"})
	require.NoError(t, err)
	require.Equal(t, 1, search.calls)

	second, err := a.Analyze(context.Background(), []string{"sleep sounds"})
	require.NoError(t, err)

	assert.Equal(t, 1, search.calls, "cached run must not refetch the store")
	assert.Equal(t, first.Metrics[0].Difficulty, second.Metrics[0].Difficulty)
	assert.Equal(t, first.Metrics[0].Traffic, second.Metrics[0].Traffic)
}
