package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/example/fisabil/internal/export"
	"github.com/example/fisabil/internal/review"
	"github.com/example/fisabil/pkg/models"
	"github.com/gorilla/mux"
)

// wordView decorates a vocabulary word with its derived category
type wordView struct {
	models.VocabularyWord
	Status      models.MasteryStatus `json:"status"`
	StatusLabel string               `json:"statusLabel"`
	Due         bool                 `json:"due"`
}

func (s *Server) wordViews(words []models.VocabularyWord, now time.Time) []wordView {
	views := make([]wordView, 0, len(words))
	for _, w := range words {
		views = append(views, wordView{
			VocabularyWord: w,
			Status:         w.Status(),
			StatusLabel:    w.Status().Label(),
			Due:            s.scheduler.IsDue(w, now),
		})
	}
	return views
}

// handleListVocabulary lists the collection, optionally narrowed by a
// search term (?q=) or a status filter (?filter=new|review|mastered)
func (s *Server) handleListVocabulary(w http.ResponseWriter, r *http.Request) {
	var words []models.VocabularyWord
	var err error

	if term := r.URL.Query().Get("q"); term != "" {
		words, err = s.vocab.Search(term)
	} else {
		words, err = s.vocab.GetAll()
	}
	if err != nil {
		http.Error(w, "Failed to load vocabulary", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	switch r.URL.Query().Get("filter") {
	case "new":
		words = filterWords(words, func(w models.VocabularyWord) bool { return w.Status() == models.StatusNew })
	case "review":
		words = s.scheduler.DueWords(words, now)
	case "mastered":
		words = filterWords(words, func(w models.VocabularyWord) bool { return w.Status() == models.StatusMastered })
	}

	respondJSON(w, http.StatusOK, s.wordViews(words, now))
}

func filterWords(words []models.VocabularyWord, keep func(models.VocabularyWord) bool) []models.VocabularyWord {
	var out []models.VocabularyWord
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// handleVocabularyStats returns the dashboard counts
func (s *Server) handleVocabularyStats(w http.ResponseWriter, r *http.Request) {
	words, err := s.vocab.GetAll()
	if err != nil {
		http.Error(w, "Failed to load vocabulary", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":             len(words),
		"mastered":          review.MasteredCount(words),
		"new":               review.NewCount(words),
		"dueForReview":      s.scheduler.DueCount(words, now),
		"masteryPercentage": review.MasteryPercentage(words),
	})
}

// handleReviewWord records a review event: the new mastery level rewrites
// the word's scheduling state and the record is replaced in the store
func (s *Server) handleReviewWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid word ID", http.StatusBadRequest)
		return
	}

	var body struct {
		MasteryLevel float64 `json:"masteryLevel"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid review payload", http.StatusBadRequest)
		return
	}

	word, err := s.vocab.GetByID(id)
	if err != nil {
		http.Error(w, "Word not found", http.StatusNotFound)
		return
	}

	now := time.Now()
	updated := s.scheduler.RecordReview(*word, body.MasteryLevel, now)
	if err := s.vocab.UpdateReview(&updated); err != nil {
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, wordView{
		VocabularyWord: updated,
		Status:         updated.Status(),
		StatusLabel:    updated.Status().Label(),
		Due:            s.scheduler.IsDue(updated, now),
	})
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid word ID", http.StatusBadRequest)
		return
	}

	if err := s.vocab.Delete(id); err != nil {
		http.Error(w, "Failed to delete word", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportVocabulary streams the collection as an Excel workbook
func (s *Server) handleExportVocabulary(w http.ResponseWriter, r *http.Request) {
	words, err := s.vocab.GetAll()
	if err != nil {
		http.Error(w, "Failed to load vocabulary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vocabulaire.xlsx"`)
	if err := export.WriteVocabulary(w, words); err != nil {
		http.Error(w, "Failed to export vocabulary", http.StatusInternalServerError)
	}
}

// handleImportVocabulary imports a word list from a file on disk
func (s *Server) handleImportVocabulary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Path == "" {
		http.Error(w, "Invalid import payload", http.StatusBadRequest)
		return
	}

	result, err := export.ImportWords(body.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Import failed: %v", err), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
