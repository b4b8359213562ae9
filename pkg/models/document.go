package models

import (
	"strings"
	"time"
)

// ScannedDocument is a block of text captured via the scan flow.
// Documents are append-only: created once per scan, never mutated.
type ScannedDocument struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Date      time.Time `json:"date" db:"date"`
	WordCount int       `json:"wordCount" db:"word_count"`
}

// CountWords returns the whitespace-token count of a text
func CountWords(text string) int {
	return len(strings.Fields(text))
}
