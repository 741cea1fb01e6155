// internal/scoring/keywords/extractor.go

// Package keywords extracts the ranked keyword phrases an app listing
// targets, from its title and description. The heuristic is
// deterministic and self-contained: term frequency with a fixed
// multiplier biasing multi-word phrases, title terms ranked above
// description terms of equal score.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// MaxKeywords caps the extraction result.
	MaxKeywords = 20
	// MaxPhraseWords caps generated phrases; longer phrases are never produced.
	MaxPhraseWords = 3
	// phraseMultiplier biases 2- and 3-word phrases over single words.
	phraseMultiplier = 2.5
)

var (
	contractionRe = regexp.MustCompile(`'(t|s|ll|re|ve)\b`)
	wordRe        = regexp.MustCompile(`[a-z0-9]+`)
)

// Candidate is one extracted phrase with its score.
type Candidate struct {
	Phrase    string  `json:"phrase"`
	Score     float64 `json:"score"`
	FromTitle bool    `json:"fromTitle"`
}

// Result is the ranked keyword list for one listing: up to 20 phrases
// of 1-3 words, sorted descending by score.
type Result struct {
	Keywords []Candidate `json:"keywords"`
}

// Phrases returns just the phrase strings, preserving rank order.
func (r Result) Phrases() []string {
	out := make([]string, len(r.Keywords))
	for i, c := range r.Keywords {
		out[i] = c.Phrase
	}
	return out
}

// Contains reports whether phrase appears among the top n extracted
// phrases (exact phrase match).
func (r Result) Contains(phrase string, n int) bool {
	if n > len(r.Keywords) {
		n = len(r.Keywords)
	}
	for _, c := range r.Keywords[:n] {
		if c.Phrase == phrase {
			return true
		}
	}
	return false
}

// tokenize lowercases text, strips contraction suffixes and returns the
// alphanumeric word tokens of length two or more.
func tokenize(text string) []string {
	text = contractionRe.ReplaceAllString(strings.ToLower(text), "")
	words := wordRe.FindAllString(text, -1)

	out := words[:0]
	for _, w := range words {
		if len(w) > 1 {
			out = append(out, w)
		}
	}
	return out
}

// candidates produces every 1- to 3-word contiguous phrase of the token
// stream with its frequency-weighted score.
func candidates(tokens []string) map[string]float64 {
	counts := make(map[string]int)
	for i := range tokens {
		for j := i + 1; j <= i+MaxPhraseWords && j <= len(tokens); j++ {
			counts[strings.Join(tokens[i:j], " ")]++
		}
	}

	scores := make(map[string]float64, len(counts))
	for phrase, count := range counts {
		score := float64(count)
		if strings.Contains(phrase, " ") {
			score *= phraseMultiplier
		}
		scores[phrase] = score
	}
	return scores
}

// Extract returns the ranked keyword list for one listing. Title and
// description are scored separately and merged: a phrase's score is the
// sum of both contributions, and ties rank title phrases above
// description-only phrases, then alphabetically, so the result order is
// fully deterministic.
func Extract(title, description string) Result {
	titleScores := candidates(tokenize(title))
	descScores := candidates(tokenize(description))

	merged := make(map[string]*Candidate, len(titleScores)+len(descScores))
	for phrase, score := range titleScores {
		merged[phrase] = &Candidate{Phrase: phrase, Score: score, FromTitle: true}
	}
	for phrase, score := range descScores {
		if c, ok := merged[phrase]; ok {
			c.Score += score
		} else {
			merged[phrase] = &Candidate{Phrase: phrase, Score: score}
		}
	}

	ranked := make([]Candidate, 0, len(merged))
	for _, c := range merged {
		ranked = append(ranked, *c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].FromTitle != ranked[j].FromTitle {
			return ranked[i].FromTitle
		}
		return ranked[i].Phrase < ranked[j].Phrase
	})

	if len(ranked) > MaxKeywords {
		ranked = ranked[:MaxKeywords]
	}
	return Result{Keywords: ranked}
}
