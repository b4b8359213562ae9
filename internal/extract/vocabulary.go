package extract

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/example/fisabil/pkg/models"
)

const (
	// Tokens this short carry no vocabulary value (particles, diacritics)
	minTokenLength = 3
	// Cap on words captured from a single document
	maxCandidates = 10
	// Starting mastery for a freshly captured word
	initialMastery = 0.1
	// Starting review interval in days
	initialInterval = 1
)

// Candidates produces vocabulary entries from a block of extracted text:
// whitespace tokens longer than two runes, de-duplicated in order of first
// appearance, capped at ten. Translation and pronunciation are placeholders
// until a real lookup service fills them in.
func Candidates(text string, now time.Time) []models.VocabularyWord {
	seen := make(map[string]bool)
	var words []models.VocabularyWord

	for _, token := range strings.Fields(text) {
		if utf8.RuneCountInString(token) < minTokenLength {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true

		words = append(words, models.VocabularyWord{
			Arabic:         token,
			Translation:    fmt.Sprintf("Traduction de %s", token),
			Pronunciation:  fmt.Sprintf("Prononciation de %s", token),
			MasteryLevel:   initialMastery,
			LastReviewed:   now,
			ReviewInterval: initialInterval,
		})

		if len(words) == maxCandidates {
			break
		}
	}

	return words
}
