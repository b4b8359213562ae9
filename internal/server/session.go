package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/example/fisabil/internal/quiz"
	"github.com/example/fisabil/pkg/models"
)

// handleGetSession returns the selected review mode together with the
// words that session would cover
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	mode, err := s.state.GetReviewMode()
	if err != nil {
		http.Error(w, "Failed to load review session", http.StatusInternalServerError)
		return
	}

	words, err := s.vocab.GetAll()
	if err != nil {
		http.Error(w, "Failed to load vocabulary", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	session := s.scheduler.SessionWords(words, mode, now)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":  mode,
		"words": s.wordViews(session, now),
	})
}

func (s *Server) handleSetSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode models.ReviewMode `json:"mode"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid session payload", http.StatusBadRequest)
		return
	}

	if err := s.state.SaveReviewMode(body.Mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"mode": body.Mode})
}

// handleQuiz builds a multiple-choice quiz from the vocabulary collection
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	count := 5
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	words, err := s.vocab.GetAll()
	if err != nil {
		http.Error(w, "Failed to load vocabulary", http.StatusInternalServerError)
		return
	}

	questions, err := quiz.NewBuilder().Build(words, count)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// handleGradeQuiz scores a finished quiz round. Answers hold the chosen
// option index per question, -1 for skipped.
func (s *Server) handleGradeQuiz(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Questions []quiz.Question `json:"questions"`
		Answers   []int           `json:"answers"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid quiz payload", http.StatusBadRequest)
		return
	}
	if len(body.Questions) == 0 {
		http.Error(w, "No questions to grade", http.StatusBadRequest)
		return
	}

	correct := quiz.Grade(body.Questions, body.Answers)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"correct": correct,
		"total":   len(body.Questions),
		"score":   float64(correct) / float64(len(body.Questions)) * 100,
	})
}
