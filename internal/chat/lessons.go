package chat

import (
	"fmt"

	"github.com/example/fisabil/pkg/models"
)

// LessonMessage is one scripted assistant turn inside a lesson
type LessonMessage struct {
	Text            string   `json:"text"`
	Arabic          string   `json:"arabic,omitempty"`
	Transliteration string   `json:"transliteration,omitempty"`
	Options         []string `json:"options,omitempty"`
}

// Lesson is a fixed sequence of assistant messages walked one option-click
// at a time
type Lesson struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Messages    []LessonMessage `json:"messages"`
}

// Completion options offered at the end of every lesson
var completionOptions = []string{
	"Leçon suivante",
	"Recommencer la leçon",
	"Voir mon profil",
	"Retour à l'accueil",
}

var lessons = []Lesson{
	{
		Title:       "La lettre Alif",
		Description: "Première lettre de l'alphabet",
		Messages: []LessonMessage{
			{
				Text:            "Bienvenue ! Aujourd'hui nous découvrons la première lettre de l'alphabet arabe : Alif.",
				Arabic:          "ا",
				Transliteration: "alif",
				Options:         []string{"Montre-moi !"},
			},
			{
				Text:            "Alif s'écrit comme un trait vertical. Elle porte le son \"a\" long, comme dans :",
				Arabic:          "بَاب",
				Transliteration: "bab (porte)",
				Options:         []string{"Un autre exemple", "J'ai compris"},
			},
			{
				Text:            "Autre mot très courant avec Alif :",
				Arabic:          "كِتَاب",
				Transliteration: "kitab (livre)",
				Options:         []string{"J'ai compris"},
			},
		},
	},
	{
		Title:       "La lettre Ba",
		Description: "Deuxième lettre de l'alphabet",
		Messages: []LessonMessage{
			{
				Text:            "Continuons avec la deuxième lettre : Ba.",
				Arabic:          "ب",
				Transliteration: "ba",
				Options:         []string{"Montre-moi !"},
			},
			{
				Text:            "Ba est une coupe avec un point en dessous. On la retrouve dans :",
				Arabic:          "بِسْمِ",
				Transliteration: "bismi (au nom de)",
				Options:         []string{"J'ai compris"},
			},
		},
	},
}

// Lessons returns the scripted lesson catalogue
func Lessons() []Lesson {
	return lessons
}

// CurrentMessage returns the scripted message at the given progress
// position. Out-of-range positions are clamped to the start.
func CurrentMessage(progress models.LessonProgress) (Lesson, LessonMessage, error) {
	if progress.Lesson < 0 || progress.Lesson >= len(lessons) {
		progress.Lesson = 0
		progress.Message = 0
	}
	lesson := lessons[progress.Lesson]
	if progress.Message < 0 || progress.Message >= len(lesson.Messages) {
		progress.Message = 0
	}
	return lesson, lesson.Messages[progress.Message], nil
}

// Advance moves the progress one message forward. At the end of a lesson it
// returns the congratulation message with the completion options instead of
// advancing.
func Advance(progress models.LessonProgress) (models.LessonProgress, LessonMessage) {
	lesson, _, _ := CurrentMessage(progress)

	next := progress.Message + 1
	if next < len(lesson.Messages) {
		progress.Message = next
		return progress, lesson.Messages[next]
	}

	return progress, LessonMessage{
		Text:    "🎉 Félicitations ! Tu as terminé cette leçon. Que veux-tu faire maintenant ?",
		Options: completionOptions,
	}
}

// NextLesson moves the progress to the start of the following lesson, if
// one exists
func NextLesson(progress models.LessonProgress) (models.LessonProgress, error) {
	if progress.Lesson+1 >= len(lessons) {
		return progress, fmt.Errorf("no lesson after %d", progress.Lesson)
	}
	return models.LessonProgress{Lesson: progress.Lesson + 1, Message: 0}, nil
}

// Restart resets the progress to the start of the current lesson
func Restart(progress models.LessonProgress) models.LessonProgress {
	return models.LessonProgress{Lesson: progress.Lesson, Message: 0}
}
