package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/example/fisabil/internal/extract"
	"github.com/example/fisabil/pkg/models"
	"github.com/gorilla/mux"
)

// handleCreateScan runs the (simulated) OCR over a captured image and
// appends the result to the scan history
func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Image string `json:"image"` // base64-encoded capture, ignored by the simulation
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid scan payload", http.StatusBadRequest)
		return
	}

	image, err := base64.StdEncoding.DecodeString(body.Image)
	if err != nil {
		http.Error(w, "Invalid image encoding", http.StatusBadRequest)
		return
	}

	content, err := s.extractor.Extract(r.Context(), image)
	if err != nil {
		http.Error(w, fmt.Sprintf("Text extraction failed: %v", err), http.StatusBadGateway)
		return
	}

	doc := models.ScannedDocument{Content: content, Date: time.Now()}
	if err := s.scans.Create(&doc); err != nil {
		http.Error(w, "Failed to save scan", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	docs, err := s.scans.GetAll()
	if err != nil {
		http.Error(w, "Failed to load scan history", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	doc, err := s.scans.GetByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Scan not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	if err := s.scans.Delete(mux.Vars(r)["id"]); err != nil {
		http.Error(w, "Failed to delete scan", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExtractVocabulary turns a scanned document into vocabulary
// candidates and stores them
func (s *Server) handleExtractVocabulary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.scans.GetByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Scan not found", http.StatusNotFound)
		return
	}

	candidates := extract.Candidates(doc.Content, time.Now())
	if len(candidates) == 0 {
		respondJSON(w, http.StatusOK, []models.VocabularyWord{})
		return
	}

	created, err := s.vocab.BulkCreate(candidates)
	if err != nil {
		http.Error(w, "Failed to save vocabulary", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}
