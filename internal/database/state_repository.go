package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/fisabil/pkg/models"
)

// Storage keys for the single-record JSON values. The names match the
// client's historical local-storage keys so an exported state dump stays
// readable.
const (
	KeyProfile       = "fisabil_user"
	KeySettings      = "fisabil_settings"
	KeyReviewSession = "fisabil_review_session"
	KeyProgress      = "fisabil_progress"
)

// StateRepository handles the app_state key-value table. Each value is one
// JSON-encoded record written wholesale.
type StateRepository struct{}

// NewStateRepository creates a new repository instance
func NewStateRepository() *StateRepository {
	return &StateRepository{}
}

// Get returns the raw value for a key. A missing key yields sql.ErrNoRows.
func (r *StateRepository) Get(key string) (string, error) {
	var value string

	query := "SELECT value FROM app_state WHERE key = ?"
	if DB.DriverName() == "postgres" {
		query = "SELECT value FROM app_state WHERE key = $1"
	}

	err := DB.Get(&value, query, key)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set writes the value for a key, replacing any prior value
func (r *StateRepository) Set(key, value string) error {
	query := `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO app_state (key, value, updated_at) VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`
	}

	_, err := DB.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state %q: %v", key, err)
	}
	return nil
}

// Delete removes a key
func (r *StateRepository) Delete(key string) error {
	query := "DELETE FROM app_state WHERE key = ?"
	if DB.DriverName() == "postgres" {
		query = "DELETE FROM app_state WHERE key = $1"
	}

	_, err := DB.Exec(query, key)
	if err != nil {
		return fmt.Errorf("failed to delete state %q: %v", key, err)
	}
	return nil
}

// loadJSON reads a key into target. A missing key leaves the provided
// default untouched; a corrupt value is logged and reset to the default
// rather than propagated.
func (r *StateRepository) loadJSON(key string, target interface{}) (found bool, err error) {
	raw, err := r.Get(key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		log.Printf("Corrupt state for %q, resetting to defaults: %v", key, err)
		if delErr := r.Delete(key); delErr != nil {
			return false, delErr
		}
		return false, nil
	}
	return true, nil
}

// saveJSON writes target under key as JSON
func (r *StateRepository) saveJSON(key string, target interface{}) error {
	raw, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %v", key, err)
	}
	return r.Set(key, string(raw))
}

// GetProfile returns the stored user profile, or the default profile when
// none has been saved yet
func (r *StateRepository) GetProfile() (models.UserProfile, error) {
	profile := models.DefaultProfile()
	_, err := r.loadJSON(KeyProfile, &profile)
	if err != nil {
		return models.DefaultProfile(), err
	}
	return profile, nil
}

// SaveProfile replaces the stored user profile wholesale
func (r *StateRepository) SaveProfile(profile models.UserProfile) error {
	return r.saveJSON(KeyProfile, profile)
}

// GetSettings returns the stored app settings, or the defaults
func (r *StateRepository) GetSettings() (models.AppSettings, error) {
	settings := models.DefaultSettings()
	_, err := r.loadJSON(KeySettings, &settings)
	if err != nil {
		return models.DefaultSettings(), err
	}
	return settings, nil
}

// SaveSettings replaces the stored app settings wholesale
func (r *StateRepository) SaveSettings(settings models.AppSettings) error {
	return r.saveJSON(KeySettings, settings)
}

// GetReviewMode returns the selected review-session mode, defaulting to full
func (r *StateRepository) GetReviewMode() (models.ReviewMode, error) {
	raw, err := r.Get(KeyReviewSession)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReviewFull, nil
	}
	if err != nil {
		return models.ReviewFull, err
	}

	mode := models.ReviewMode(raw)
	if !mode.Valid() {
		log.Printf("Unknown review mode %q, falling back to full", raw)
		return models.ReviewFull, nil
	}
	return mode, nil
}

// SaveReviewMode stores the selected review-session mode
func (r *StateRepository) SaveReviewMode(mode models.ReviewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid review mode %q", mode)
	}
	return r.Set(KeyReviewSession, string(mode))
}

// GetProgress returns the chat lesson progress, starting at the beginning
func (r *StateRepository) GetProgress() (models.LessonProgress, error) {
	var progress models.LessonProgress
	_, err := r.loadJSON(KeyProgress, &progress)
	if err != nil {
		return models.LessonProgress{}, err
	}
	return progress, nil
}

// SaveProgress stores the chat lesson progress
func (r *StateRepository) SaveProgress(progress models.LessonProgress) error {
	return r.saveJSON(KeyProgress, progress)
}
