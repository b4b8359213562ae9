package models

import "time"

// Mastery thresholds for categorizing vocabulary words
const (
	MasteryNewThreshold      = 0.3
	MasteryMasteredThreshold = 0.8
)

// MasteryStatus categorizes a word by its mastery level
type MasteryStatus string

const (
	StatusNew          MasteryStatus = "new"
	StatusIntermediate MasteryStatus = "intermediate"
	StatusMastered     MasteryStatus = "mastered"
)

// VocabularyWord represents an Arabic word captured from a scanned text
type VocabularyWord struct {
	ID             int64     `json:"id" db:"id"`
	Arabic         string    `json:"arabic" db:"arabic"`
	Translation    string    `json:"translation" db:"translation"`
	Pronunciation  string    `json:"pronunciation" db:"pronunciation"`
	MasteryLevel   float64   `json:"masteryLevel" db:"mastery_level"` // always in [0.0, 1.0]
	LastReviewed   time.Time `json:"lastReviewed" db:"last_reviewed"`
	ReviewInterval int       `json:"reviewInterval" db:"review_interval"` // days until due
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Status returns the mastery category of the word
func (w *VocabularyWord) Status() MasteryStatus {
	switch {
	case w.MasteryLevel >= MasteryMasteredThreshold:
		return StatusMastered
	case w.MasteryLevel < MasteryNewThreshold:
		return StatusNew
	default:
		return StatusIntermediate
	}
}

// Label returns the user-facing French label for the status
func (s MasteryStatus) Label() string {
	switch s {
	case StatusMastered:
		return "Maîtrisé"
	case StatusIntermediate:
		return "Intermédiaire"
	default:
		return "Nouveau"
	}
}
