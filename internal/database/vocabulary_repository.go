package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/fisabil/pkg/models"
)

// VocabularyRepository handles database operations for vocabulary words
type VocabularyRepository struct{}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository() *VocabularyRepository {
	return &VocabularyRepository{}
}

// GetAll returns the whole vocabulary collection, newest first
func (r *VocabularyRepository) GetAll() ([]models.VocabularyWord, error) {
	words := []models.VocabularyWord{}
	err := DB.Select(&words, "SELECT * FROM vocabulary ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %v", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *VocabularyRepository) GetByID(id int64) (*models.VocabularyWord, error) {
	var word models.VocabularyWord

	query := "SELECT * FROM vocabulary WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Get(&word, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// Create inserts a new word and fills in its assigned ID
func (r *VocabularyRepository) Create(word *models.VocabularyWord) error {
	now := time.Now()
	word.CreatedAt = now
	word.UpdatedAt = now

	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO vocabulary (arabic, translation, pronunciation, mastery_level, last_reviewed, review_interval, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			word.Arabic,
			word.Translation,
			word.Pronunciation,
			word.MasteryLevel,
			word.LastReviewed,
			word.ReviewInterval,
			word.CreatedAt,
			word.UpdatedAt,
		).Scan(&word.ID)
	}

	// SQLite (no RETURNING)
	query := `
		INSERT INTO vocabulary (arabic, translation, pronunciation, mastery_level, last_reviewed, review_interval, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		word.Arabic,
		word.Translation,
		word.Pronunciation,
		word.MasteryLevel,
		word.LastReviewed,
		word.ReviewInterval,
		word.CreatedAt,
		word.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id

	return nil
}

// BulkCreate inserts a batch of extracted words in one transaction
func (r *VocabularyRepository) BulkCreate(words []models.VocabularyWord) ([]models.VocabularyWord, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vocabulary (arabic, translation, pronunciation, mastery_level, last_reviewed, review_interval, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO vocabulary (arabic, translation, pronunciation, mastery_level, last_reviewed, review_interval, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
	}

	now := time.Now()
	created := make([]models.VocabularyWord, 0, len(words))
	for _, word := range words {
		word.CreatedAt = now
		word.UpdatedAt = now

		if DB.DriverName() == "postgres" {
			err = tx.QueryRow(
				query,
				word.Arabic,
				word.Translation,
				word.Pronunciation,
				word.MasteryLevel,
				word.LastReviewed,
				word.ReviewInterval,
				word.CreatedAt,
				word.UpdatedAt,
			).Scan(&word.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to insert word %q: %v", word.Arabic, err)
			}
		} else {
			result, err := tx.Exec(
				query,
				word.Arabic,
				word.Translation,
				word.Pronunciation,
				word.MasteryLevel,
				word.LastReviewed,
				word.ReviewInterval,
				word.CreatedAt,
				word.UpdatedAt,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert word %q: %v", word.Arabic, err)
			}
			id, err := result.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("failed to get last insert ID: %v", err)
			}
			word.ID = id
		}

		created = append(created, word)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return created, nil
}

// UpdateReview persists the scheduling state written by a review event,
// replacing the prior record by identifier
func (r *VocabularyRepository) UpdateReview(word *models.VocabularyWord) error {
	query := `
		UPDATE vocabulary SET
			mastery_level = ?,
			last_reviewed = ?,
			review_interval = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if DB.DriverName() == "postgres" {
		query = `
			UPDATE vocabulary SET
				mastery_level = $1,
				last_reviewed = $2,
				review_interval = $3,
				updated_at = NOW()
			WHERE id = $4
		`
	}

	_, err := DB.Exec(query, word.MasteryLevel, word.LastReviewed, word.ReviewInterval, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update review state: %v", err)
	}
	return nil
}

// Delete removes a word
func (r *VocabularyRepository) Delete(id int64) error {
	query := "DELETE FROM vocabulary WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = "DELETE FROM vocabulary WHERE id = $1"
	}

	_, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}

// Search returns words whose Arabic text or translation matches the query
func (r *VocabularyRepository) Search(term string) ([]models.VocabularyWord, error) {
	words := []models.VocabularyWord{}
	pattern := "%" + term + "%"

	if DB.DriverName() == "postgres" {
		query := `
			SELECT * FROM vocabulary
			WHERE arabic LIKE $1 OR translation ILIKE $1
			ORDER BY created_at DESC
		`
		if err := DB.Select(&words, query, pattern); err != nil {
			return nil, fmt.Errorf("failed to search vocabulary: %v", err)
		}
		return words, nil
	}

	query := `
		SELECT * FROM vocabulary
		WHERE arabic LIKE ? OR LOWER(translation) LIKE LOWER(?)
		ORDER BY created_at DESC
	`
	if err := DB.Select(&words, query, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %v", err)
	}
	return words, nil
}

// Count returns the size of the vocabulary collection
func (r *VocabularyRepository) Count() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM vocabulary")
	if err != nil {
		return 0, fmt.Errorf("failed to count vocabulary: %v", err)
	}
	return count, nil
}
