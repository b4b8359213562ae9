package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/fisabil/pkg/models"
	"github.com/google/uuid"
)

// ScanRepository handles database operations for scanned documents
type ScanRepository struct{}

// NewScanRepository creates a new repository instance
func NewScanRepository() *ScanRepository {
	return &ScanRepository{}
}

// GetAll returns the scan history, newest first
func (r *ScanRepository) GetAll() ([]models.ScannedDocument, error) {
	docs := []models.ScannedDocument{}
	err := DB.Select(&docs, "SELECT * FROM scans ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %v", err)
	}
	return docs, nil
}

// GetByID returns a scanned document by ID
func (r *ScanRepository) GetByID(id string) (*models.ScannedDocument, error) {
	var doc models.ScannedDocument

	query := "SELECT * FROM scans WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Get(&doc, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan by ID: %v", err)
	}
	return &doc, nil
}

// Create stores a new scanned document. The ID and word count are derived
// here; documents are never mutated afterwards.
func (r *ScanRepository) Create(doc *models.ScannedDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}
	doc.WordCount = models.CountWords(doc.Content)

	query := "INSERT INTO scans (id, content, date, word_count) VALUES (?, ?, ?, ?)"
	if DB.DriverName() == "postgres" {
		query = "INSERT INTO scans (id, content, date, word_count) VALUES ($1, $2, $3, $4)"
	}

	_, err := DB.Exec(query, doc.ID, doc.Content, doc.Date, doc.WordCount)
	if err != nil {
		return fmt.Errorf("failed to create scan: %v", err)
	}
	return nil
}

// Delete removes a scanned document from the history
func (r *ScanRepository) Delete(id string) error {
	query := "DELETE FROM scans WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = "DELETE FROM scans WHERE id = $1"
	}

	_, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %v", err)
	}
	return nil
}
