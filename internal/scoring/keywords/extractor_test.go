// internal/scoring/keywords/extractor_test.go
package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "lowercases and splits on non alphanumerics",
			text:     "Sleep Sounds: White-Noise & Rain!",
			expected: []string{"sleep", "sounds", "white", "noise", "rain"},
		},
		{
			name:     "strips contractions",
			text:     "it's the world's best, you'll love it, we've tried, don't worry, you're set",
			expected: []string{"it", "the", "world", "best", "you", "love", "it", "we", "tried", "don", "worry", "you", "set"},
		},
		{
			name:     "drops single character tokens",
			text:     "a b notes 4 u planner",
			expected: []string{"notes", "planner"},
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtract_PhraseBias(t *testing.T) {
	// "sleep sounds" appears once as a phrase (score 2.5) while each
	// word also appears once (score 1); the phrase must rank first.
	result := Extract("Sleep Sounds", "")

	require.NotEmpty(t, result.Keywords)
	assert.Equal(t, "sleep sounds", result.Keywords[0].Phrase)
	assert.InDelta(t, 2.5, result.Keywords[0].Score, 1e-9)
	assert.True(t, result.Keywords[0].FromTitle)
}

func TestExtract_FrequencyWeighting(t *testing.T) {
	description := "meditation timer with meditation reminders and meditation stats"
	result := Extract("", description)

	require.NotEmpty(t, result.Keywords)
	assert.Equal(t, "meditation", result.Keywords[0].Phrase)
	assert.InDelta(t, 3.0, result.Keywords[0].Score, 1e-9)
}

func TestExtract_TitleOutranksDescriptionOnTies(t *testing.T) {
	// Both words occur exactly once; the title word must rank above the
	// description word of equal score.
	result := Extract("planner", "organizer")

	require.Len(t, result.Keywords, 2)
	assert.Equal(t, "planner", result.Keywords[0].Phrase)
	assert.Equal(t, "organizer", result.Keywords[1].Phrase)
}

func TestExtract_MergesTitleAndDescriptionScores(t *testing.T) {
	result := Extract("habit tracker", "the best habit tracker for daily habits")

	var found *Candidate
	for i := range result.Keywords {
		if result.Keywords[i].Phrase == "habit tracker" {
			found = &result.Keywords[i]
			break
		}
	}
	require.NotNil(t, found, "merged phrase missing from result")
	// One phrase occurrence in each source: 2.5 + 2.5.
	assert.InDelta(t, 5.0, found.Score, 1e-9)
	assert.True(t, found.FromTitle)
}

func TestExtract_CapsAtTwentyAndThreeWords(t *testing.T) {
	description := "alpha beta gamma delta epsilon zeta eta theta iota kappa " +
		"lambda mu nu xi omicron pi rho sigma tau upsilon"
	result := Extract("", description)

	assert.Len(t, result.Keywords, MaxKeywords)
	for _, c := range result.Keywords {
		words := strings.Split(c.Phrase, " ")
		assert.LessOrEqual(t, len(words), MaxPhraseWords)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	title := "Note Taking App"
	description := "take notes fast with the best note taking experience"

	first := Extract(title, description)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(title, description))
	}
}

func TestResult_Contains(t *testing.T) {
	result := Extract("Sleep Sounds", "relaxing sleep sounds for deep sleep")

	assert.True(t, result.Contains("sleep sounds", 10))
	assert.False(t, result.Contains("white noise", 10))
	// Limit smaller than the result is honored.
	assert.False(t, result.Contains(result.Keywords[len(result.Keywords)-1].Phrase, 1))
}
