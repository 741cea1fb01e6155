// internal/scoring/traffic/models.go
package traffic

import "aso-keyword-service/internal/scoring/difficulty"

// SuggestScore is the suggestion-priority component. Priority is the
// store's autocomplete weight for the exact keyword, zero when the
// keyword never appears in the hint list.
type SuggestScore struct {
	Priority int     `json:"priority"`
	Score    float64 `json:"score"`
}

// RankedScore summarizes category-chart presence of the top ranked
// apps. AvgRank is the mean chart position of the apps that chart at
// all, zero when none do. Raw is the weighted composite before the
// division back onto the 1-10 scale.
type RankedScore struct {
	RankedCount int     `json:"rankedCount"`
	AvgRank     float64 `json:"avgRank"`
	Raw         float64 `json:"raw"`
	Score       float64 `json:"score"`
}

// LengthScore rewards short keywords, which attract more search
// volume than long-tail phrases.
type LengthScore struct {
	Length int     `json:"length"`
	Score  float64 `json:"score"`
}

// Report is the full traffic breakdown for one keyword on the 1-10
// scale; higher means more search volume.
type Report struct {
	Keyword  string                  `json:"keyword"`
	Suggest  SuggestScore            `json:"suggest"`
	Ranked   RankedScore             `json:"ranked"`
	Installs difficulty.AverageScore `json:"installs"`
	Length   LengthScore             `json:"length"`
	Score    float64                 `json:"score"`
}
