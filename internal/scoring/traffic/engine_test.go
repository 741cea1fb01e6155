// internal/scoring/traffic/engine_test.go
package traffic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aso-keyword-service/internal/appstore"
	commonerrors "aso-keyword-service/internal/common/errors"
	"aso-keyword-service/internal/common/logger"
)

// fakeRankings serves canned charts and records fetch calls.
type fakeRankings struct {
	charts map[string][]string
	err    error
	calls  int
}

func (f *fakeRankings) FetchRanking(_ context.Context, collection appstore.Collection, genreID int) (appstore.CategoryRankingList, error) {
	f.calls++
	if f.err != nil {
		return appstore.CategoryRankingList{}, f.err
	}
	key := string(collection)
	return appstore.CategoryRankingList{
		Collection: collection,
		GenreID:    genreID,
		AppIDs:     f.charts[key],
	}, nil
}

func chartedApp(id string, genreID int, free bool) appstore.AppRecord {
	return appstore.AppRecord{AppID: id, Title: "App " + id, Free: free, PrimaryGenreID: genreID}
}

func TestScoreSuggestion(t *testing.T) {
	hints := []appstore.SuggestionEntry{
		{Term: "sleep sounds", Priority: 4000},
		{Term: "sleep tracker", Priority: 7200},
	}

	matched := ScoreSuggestion("Sleep Sounds", hints)
	assert.Equal(t, 4000, matched.Priority)
	assert.InDelta(t, 5.5, matched.Score, 1e-9)

	missed := ScoreSuggestion("sleep aid", hints)
	assert.Equal(t, 0, missed.Priority)
	assert.Equal(t, 1.0, missed.Score)
}

func TestScoreRankings_NoneCharted(t *testing.T) {
	source := &fakeRankings{charts: map[string][]string{}}
	apps := []appstore.AppRecord{chartedApp("1", 6013, true), chartedApp("2", 6013, true)}

	result := ScoreRankings(context.Background(), source, apps, logger.NewNoOpLogger())

	assert.Equal(t, 0, result.RankedCount)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, 0.0, result.AvgRank)
}

func TestScoreRankings_Composite(t *testing.T) {
	source := &fakeRankings{charts: map[string][]string{
		string(appstore.CollectionTopFree): {"1", "x", "y", "2"},
	}}
	apps := []appstore.AppRecord{
		chartedApp("1", 6013, true), // position 1
		chartedApp("2", 6013, true), // position 4
		chartedApp("3", 6013, true), // absent
	}

	result := ScoreRankings(context.Background(), source, apps, logger.NewNoOpLogger())

	require.Equal(t, 2, result.RankedCount)
	assert.InDelta(t, 2.5, result.AvgRank, 1e-9)
	// count: 1 + (2/10)*9 = 2.8; rank: 1 + 9*(100-2.5)/99 ~= 9.8636
	composite := 2.8*5 + 9.863636363636363
	assert.InDelta(t, composite, result.Raw, 1e-9)
	assert.InDelta(t, composite/6, result.Score, 1e-9)
}

func TestScoreRankings_MemoizesChartFetches(t *testing.T) {
	source := &fakeRankings{charts: map[string][]string{}}
	apps := []appstore.AppRecord{
		chartedApp("1", 6013, true),
		chartedApp("2", 6013, true),
		chartedApp("3", 6013, false), // paid, different chart
	}

	ScoreRankings(context.Background(), source, apps, logger.NewNoOpLogger())

	assert.Equal(t, 2, source.calls)
}

func TestScoreRankings_FetchErrorTreatedAsAbsent(t *testing.T) {
	source := &fakeRankings{err: errors.New("rss feed unavailable")}
	apps := []appstore.AppRecord{chartedApp("1", 6013, true)}

	result := ScoreRankings(context.Background(), source, apps, logger.NewNoOpLogger())

	assert.Equal(t, 0, result.RankedCount)
	assert.Equal(t, 1.0, result.Score)
}

func TestScoreLength_Monotonic(t *testing.T) {
	short := ScoreLength("yoga")
	long := ScoreLength("guided meditation for sleep")

	assert.Equal(t, 4, short.Length)
	assert.Greater(t, short.Score, long.Score)
	assert.Equal(t, 1.0, long.Score) // past the 25-char cap
}

func TestCompute_EndToEnd(t *testing.T) {
	source := &fakeRankings{charts: map[string][]string{
		string(appstore.CollectionTopFree): {"1"},
	}}
	set := appstore.SearchResultSet{
		Keyword: "sleep sounds",
		Apps:    []appstore.AppRecord{chartedApp("1", 6013, true), chartedApp("2", 6013, true)},
	}
	hints := []appstore.SuggestionEntry{{Term: "sleep sounds", Priority: 4000}}

	engine := NewEngine(source, logger.NewNoOpLogger())
	report, err := engine.Compute(context.Background(), "sleep sounds", set, hints)
	require.NoError(t, err)

	assert.InDelta(t, 5.5, report.Suggest.Score, 1e-9)
	assert.Equal(t, 1, report.Ranked.RankedCount)
	assert.True(t, report.Installs.InsufficientData)
	assert.GreaterOrEqual(t, report.Score, 1.0)
	assert.LessOrEqual(t, report.Score, 10.0)
}

func TestCompute_Validation(t *testing.T) {
	engine := NewEngine(&fakeRankings{}, logger.NewNoOpLogger())

	_, err := engine.Compute(context.Background(), "", appstore.SearchResultSet{
		Apps: []appstore.AppRecord{chartedApp("1", 6013, true)},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeKeywordValidationFailed, commonerrors.CodeOf(err))

	_, err = engine.Compute(context.Background(), "sleep sounds", appstore.SearchResultSet{}, nil)
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeEmptyResultSet, commonerrors.CodeOf(err))
}
