package chat

import (
	"testing"

	"github.com/example/fisabil/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonWalk(t *testing.T) {
	progress := models.LessonProgress{}

	lesson, message, err := CurrentMessage(progress)
	require.NoError(t, err)
	assert.Equal(t, "La lettre Alif", lesson.Title)
	assert.Equal(t, "ا", message.Arabic)

	progress, message = Advance(progress)
	assert.Equal(t, 1, progress.Message)
	assert.NotEmpty(t, message.Text)
}

func TestLessonCompletion(t *testing.T) {
	lesson := Lessons()[0]
	progress := models.LessonProgress{Lesson: 0, Message: len(lesson.Messages) - 1}

	// Advancing past the last message yields the congratulation, and the
	// position does not move
	after, message := Advance(progress)
	assert.Equal(t, progress, after)
	assert.Contains(t, message.Text, "Félicitations")
	assert.Equal(t, completionOptions, message.Options)
}

func TestNextLesson(t *testing.T) {
	progress, err := NextLesson(models.LessonProgress{Lesson: 0, Message: 2})
	require.NoError(t, err)
	assert.Equal(t, models.LessonProgress{Lesson: 1, Message: 0}, progress)

	last := len(Lessons()) - 1
	_, err = NextLesson(models.LessonProgress{Lesson: last})
	assert.Error(t, err)
}

func TestRestart(t *testing.T) {
	progress := Restart(models.LessonProgress{Lesson: 1, Message: 1})
	assert.Equal(t, models.LessonProgress{Lesson: 1, Message: 0}, progress)
}

func TestCurrentMessageClampsOutOfRange(t *testing.T) {
	lesson, message, err := CurrentMessage(models.LessonProgress{Lesson: 99, Message: 99})
	require.NoError(t, err)
	assert.Equal(t, "La lettre Alif", lesson.Title)
	assert.Equal(t, lesson.Messages[0], message)
}
