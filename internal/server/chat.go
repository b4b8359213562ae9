package server

import (
	"net/http"

	"github.com/example/fisabil/internal/chat"
)

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Text == "" {
		http.Error(w, "Invalid chat payload", http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, s.chatResponder().Respond(body.Text))
}

// lessonView pairs a scripted message with its lesson header and the
// updated progress position
type lessonView struct {
	Lesson      string             `json:"lesson"`
	Description string             `json:"description"`
	Message     chat.LessonMessage `json:"message"`
	Progress    interface{}        `json:"progress"`
}

func (s *Server) handleCurrentLesson(w http.ResponseWriter, r *http.Request) {
	progress, err := s.state.GetProgress()
	if err != nil {
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}

	lesson, message, err := chat.CurrentMessage(progress)
	if err != nil {
		http.Error(w, "Failed to load lesson", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, lessonView{
		Lesson:      lesson.Title,
		Description: lesson.Description,
		Message:     message,
		Progress:    progress,
	})
}

func (s *Server) handleAdvanceLesson(w http.ResponseWriter, r *http.Request) {
	progress, err := s.state.GetProgress()
	if err != nil {
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}

	progress, message := chat.Advance(progress)
	if err := s.state.SaveProgress(progress); err != nil {
		http.Error(w, "Failed to save progress", http.StatusInternalServerError)
		return
	}

	lesson, _, _ := chat.CurrentMessage(progress)
	respondJSON(w, http.StatusOK, lessonView{
		Lesson:      lesson.Title,
		Description: lesson.Description,
		Message:     message,
		Progress:    progress,
	})
}

func (s *Server) handleNextLesson(w http.ResponseWriter, r *http.Request) {
	progress, err := s.state.GetProgress()
	if err != nil {
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}

	progress, err = chat.NextLesson(progress)
	if err != nil {
		http.Error(w, "No more lessons", http.StatusConflict)
		return
	}
	if err := s.state.SaveProgress(progress); err != nil {
		http.Error(w, "Failed to save progress", http.StatusInternalServerError)
		return
	}

	lesson, message, _ := chat.CurrentMessage(progress)
	respondJSON(w, http.StatusOK, lessonView{
		Lesson:      lesson.Title,
		Description: lesson.Description,
		Message:     message,
		Progress:    progress,
	})
}

func (s *Server) handleRestartLesson(w http.ResponseWriter, r *http.Request) {
	progress, err := s.state.GetProgress()
	if err != nil {
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}

	progress = chat.Restart(progress)
	if err := s.state.SaveProgress(progress); err != nil {
		http.Error(w, "Failed to save progress", http.StatusInternalServerError)
		return
	}

	lesson, message, _ := chat.CurrentMessage(progress)
	respondJSON(w, http.StatusOK, lessonView{
		Lesson:      lesson.Title,
		Description: lesson.Description,
		Message:     message,
		Progress:    progress,
	})
}
