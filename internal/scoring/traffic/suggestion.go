// internal/scoring/traffic/suggestion.go
package traffic

import (
	"strings"

	"aso-keyword-service/internal/appstore"
	"aso-keyword-service/internal/scoring/normalize"
)

// suggestPriorityThreshold saturates the suggestion score. Store hint
// priorities run 0-10000 but anything past 8000 is already a
// top-of-autocomplete term.
const suggestPriorityThreshold = 8000

// ScoreSuggestion looks the keyword up among the store's autocomplete
// hints. Only an exact term match counts; a keyword the store never
// suggests carries priority zero and lands on the floor score.
func ScoreSuggestion(keyword string, hints []appstore.SuggestionEntry) SuggestScore {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	priority := 0
	for _, hint := range hints {
		if hint.Term == keyword {
			priority = hint.Priority
			break
		}
	}
	return SuggestScore{
		Priority: priority,
		Score:    normalize.Z(float64(priority), suggestPriorityThreshold),
	}
}
