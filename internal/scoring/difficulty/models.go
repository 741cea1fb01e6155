// internal/scoring/difficulty/models.go
package difficulty

// TitleMatchScore classifies the keyword/title relationship across the
// top ranked apps. The four buckets are mutually exclusive.
type TitleMatchScore struct {
	Exact   int     `json:"exact"`
	Broad   int     `json:"broad"`
	Partial int     `json:"partial"`
	None    int     `json:"none"`
	Score   float64 `json:"score"`
}

// CompetitorScore counts apps in the top 100 whose own extracted
// keywords include the target keyword.
type CompetitorScore struct {
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// AverageScore is a component built on a per-app average (reviews,
// rating). InsufficientData marks the floor-score degradation used when
// no app in the slice carried the field.
type AverageScore struct {
	Average          float64 `json:"average"`
	Score            float64 `json:"score"`
	InsufficientData bool    `json:"insufficientData,omitempty"`
}

// AgeScore is the freshness component over days since last update.
type AgeScore struct {
	AverageDays      float64 `json:"averageDays"`
	Score            float64 `json:"score"`
	InsufficientData bool    `json:"insufficientData,omitempty"`
}

// Report is the full difficulty breakdown for one keyword. All scores
// are on the 1-10 scale, rounded to two decimals; higher means harder
// to rank.
type Report struct {
	Keyword      string          `json:"keyword"`
	TitleMatches TitleMatchScore `json:"titleMatches"`
	Competitors  CompetitorScore `json:"competitors"`
	Installs     AverageScore    `json:"installs"`
	Rating       AverageScore    `json:"rating"`
	Age          AgeScore        `json:"age"`
	Score        float64         `json:"score"`
}
