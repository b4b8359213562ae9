package models

// ReviewMode selects how the next review session is assembled
type ReviewMode string

const (
	ReviewQuick ReviewMode = "quick" // a few due words
	ReviewFull  ReviewMode = "full"  // everything due
	ReviewNew   ReviewMode = "new"   // only new words
	ReviewQuiz  ReviewMode = "quiz"  // multiple-choice quiz
)

// Valid reports whether the mode is one of the known session types
func (m ReviewMode) Valid() bool {
	switch m {
	case ReviewQuick, ReviewFull, ReviewNew, ReviewQuiz:
		return true
	}
	return false
}

// LessonProgress tracks the user's position in the scripted chat lessons
type LessonProgress struct {
	Lesson  int `json:"lesson"`
	Message int `json:"message"`
}
