package review

import (
	"time"

	"github.com/example/fisabil/pkg/models"
)

// Scheduler assigns review intervals from mastery levels. Unlike SM-2 there
// is no easiness factor and no backoff: the interval is a step function of
// the mastery level recorded at review time, and an overdue word never
// regresses on its own.
type Scheduler struct {
	// Interval in days once a word is mastered
	MasteredInterval int
	// Interval in days for intermediate words
	IntermediateInterval int
	// Interval in days for new words
	NewInterval int
	// Mastery level at or above which a word gets the mastered interval
	MasteredThreshold float64
	// Mastery level at or above which a word gets the intermediate interval
	IntermediateThreshold float64
	// Number of words in a quick session
	QuickSessionSize int
}

// New creates a scheduler with the default intervals
func New() *Scheduler {
	return &Scheduler{
		MasteredInterval:      7,
		IntermediateInterval:  3,
		NewInterval:           1,
		MasteredThreshold:     0.8,
		IntermediateThreshold: 0.5,
		QuickSessionSize:      5,
	}
}

// Clamp limits a mastery level to [0.0, 1.0]
func Clamp(mastery float64) float64 {
	if mastery < 0 {
		return 0
	}
	if mastery > 1 {
		return 1
	}
	return mastery
}

// Interval returns the review interval in days for a mastery level.
// Out-of-range levels are clamped before the thresholds are applied.
func (s *Scheduler) Interval(mastery float64) int {
	mastery = Clamp(mastery)
	switch {
	case mastery >= s.MasteredThreshold:
		return s.MasteredInterval
	case mastery >= s.IntermediateThreshold:
		return s.IntermediateInterval
	default:
		return s.NewInterval
	}
}

// IsDue reports whether the word must be reviewed at the given time.
// A word is due once the elapsed days since the last review reach the
// review interval, boundary inclusive. A zeroed or future-dated
// last-review timestamp counts as due.
func (s *Scheduler) IsDue(word models.VocabularyWord, now time.Time) bool {
	if word.LastReviewed.IsZero() || word.LastReviewed.After(now) {
		return true
	}
	elapsedDays := now.Sub(word.LastReviewed).Hours() / 24
	return elapsedDays >= float64(word.ReviewInterval)
}

// RecordReview applies a review event to a word and returns the updated
// copy. The mastery input is clamped, the last-review timestamp is set to
// now, and the interval follows from the new mastery level. Persisting the
// result is the caller's job.
func (s *Scheduler) RecordReview(word models.VocabularyWord, mastery float64, now time.Time) models.VocabularyWord {
	word.MasteryLevel = Clamp(mastery)
	word.LastReviewed = now
	word.ReviewInterval = s.Interval(word.MasteryLevel)
	return word
}

// DueWords returns the words due for review at the given time
func (s *Scheduler) DueWords(words []models.VocabularyWord, now time.Time) []models.VocabularyWord {
	var due []models.VocabularyWord
	for _, w := range words {
		if s.IsDue(w, now) {
			due = append(due, w)
		}
	}
	return due
}

// DueCount returns how many words are due for review at the given time
func (s *Scheduler) DueCount(words []models.VocabularyWord, now time.Time) int {
	return len(s.DueWords(words, now))
}

// MasteredCount returns how many words have reached the mastered threshold
func MasteredCount(words []models.VocabularyWord) int {
	count := 0
	for _, w := range words {
		if w.Status() == models.StatusMastered {
			count++
		}
	}
	return count
}

// NewCount returns how many words are still in the new category
func NewCount(words []models.VocabularyWord) int {
	count := 0
	for _, w := range words {
		if w.Status() == models.StatusNew {
			count++
		}
	}
	return count
}

// MasteryPercentage returns the mastered share of the collection in
// [0, 100]. An empty collection yields 0.
func MasteryPercentage(words []models.VocabularyWord) float64 {
	if len(words) == 0 {
		return 0
	}
	return float64(MasteredCount(words)) / float64(len(words)) * 100
}

// SessionWords assembles the word list for a review session. Quick sessions
// cap the due list, full sessions take everything due, and new sessions take
// unreviewed words regardless of schedule. Quiz sessions draw from the full
// collection; question building lives in the quiz package.
func (s *Scheduler) SessionWords(words []models.VocabularyWord, mode models.ReviewMode, now time.Time) []models.VocabularyWord {
	switch mode {
	case models.ReviewQuick:
		due := s.DueWords(words, now)
		if len(due) > s.QuickSessionSize {
			due = due[:s.QuickSessionSize]
		}
		return due
	case models.ReviewNew:
		var fresh []models.VocabularyWord
		for _, w := range words {
			if w.Status() == models.StatusNew {
				fresh = append(fresh, w)
			}
		}
		return fresh
	case models.ReviewQuiz:
		return words
	default:
		return s.DueWords(words, now)
	}
}
