// internal/scoring/traffic/length.go
package traffic

import (
	"strings"
	"unicode/utf8"

	"aso-keyword-service/internal/scoring/normalize"
)

const (
	minKeywordLength = 1
	maxKeywordLength = 25
)

// ScoreLength maps keyword length onto search volume: single words
// score near the top, 25-plus character phrases hit the floor. Length
// is counted in runes so non-ASCII markets behave.
func ScoreLength(keyword string) LengthScore {
	length := utf8.RuneCountInString(strings.TrimSpace(keyword))
	return LengthScore{
		Length: length,
		Score:  normalize.Inverted(float64(length), minKeywordLength, maxKeywordLength),
	}
}
