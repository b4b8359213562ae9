package quiz

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/example/fisabil/pkg/models"
)

// Question is one multiple-choice item: pick the translation of an Arabic
// word among shuffled options
type Question struct {
	Word         models.VocabularyWord `json:"word"`
	Options      []string              `json:"options"`
	CorrectIndex int                   `json:"correctIndex"`
}

// Builder generates quiz questions from the vocabulary collection
type Builder struct {
	// Number of wrong options per question
	DistractorCount int
	rand            *rand.Rand
}

// NewBuilder creates a builder with the default question shape
func NewBuilder() *Builder {
	return &Builder{
		DistractorCount: 3,
		rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Build assembles up to count questions from the given words. Each question
// mixes the word's translation with translations of other words; at least
// two words are needed to form a question.
func (b *Builder) Build(words []models.VocabularyWord, count int) ([]Question, error) {
	if len(words) < 2 {
		return nil, fmt.Errorf("need at least 2 words to build a quiz, have %d", len(words))
	}

	shuffled := make([]models.VocabularyWord, len(words))
	copy(shuffled, words)
	b.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}

	questions := make([]Question, 0, count)
	for _, word := range shuffled[:count] {
		options := b.distractors(word, words)
		options = append(options, word.Translation)
		b.rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		correct := 0
		for i, opt := range options {
			if opt == word.Translation {
				correct = i
				break
			}
		}

		questions = append(questions, Question{
			Word:         word,
			Options:      options,
			CorrectIndex: correct,
		})
	}

	return questions, nil
}

// distractors picks wrong translations from the rest of the collection
func (b *Builder) distractors(word models.VocabularyWord, pool []models.VocabularyWord) []string {
	var candidates []string
	for _, other := range pool {
		if other.ID != word.ID && other.Translation != word.Translation {
			candidates = append(candidates, other.Translation)
		}
	}
	b.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > b.DistractorCount {
		candidates = candidates[:b.DistractorCount]
	}
	return candidates
}

// Grade scores a finished quiz: answers holds the chosen option index per
// question, -1 for skipped
func Grade(questions []Question, answers []int) (correct int) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			correct++
		}
	}
	return correct
}
