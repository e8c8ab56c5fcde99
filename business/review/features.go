package review

import (
	"fraudGuard/domain"
	"strings"
	"unicode/utf8"
)

// FeatureVersion identifies ExtractFeatures. Bump it whenever the output for
// a given text changes.
const FeatureVersion = 1

// ExtractFeatures computes whitespace-token statistics of a review text.
// Empty text yields zeros.
func ExtractFeatures(text string) domain.ReviewFeatures {
	words := strings.Fields(text)
	f := domain.ReviewFeatures{Version: FeatureVersion, WordCount: len(words)}
	if len(words) == 0 {
		return f
	}

	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	f.AvgWordLength = float64(total) / float64(len(words))
	return f
}
