package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of a word-list import
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWords imports vocabulary from an Excel or CSV word list. Expected
// columns: Arabic, translation, optional pronunciation. Imported words get
// the initial scheduling state of a freshly captured word.
func ImportWords(path string) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return importFromCSV(path)
	}
	return importFromExcel(path)
}

func importFromExcel(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	return importRows(rows)
}

func importFromCSV(path string) (*ImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, record)
	}

	return importRows(rows)
}

// importRows creates vocabulary records from raw rows, skipping the header
// and anything without an Arabic term
func importRows(rows [][]string) (*ImportResult, error) {
	repo := database.NewVocabularyRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	now := time.Now()
	for i, row := range rows {
		// Header row
		if i == 0 {
			continue
		}

		result.TotalProcessed++

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			result.Skipped++
			continue
		}

		word := models.VocabularyWord{
			Arabic:         strings.TrimSpace(row[0]),
			MasteryLevel:   0.1,
			LastReviewed:   now,
			ReviewInterval: 1,
		}
		if len(row) > 1 {
			word.Translation = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			word.Pronunciation = strings.TrimSpace(row[2])
		}

		if err := repo.Create(&word); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// WriteVocabulary writes the vocabulary collection as an Excel workbook to w
func WriteVocabulary(w io.Writer, words []models.VocabularyWord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headers := []string{"Arabic", "Translation", "Pronunciation", "Mastery", "Status", "Last reviewed", "Interval (days)"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %v", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %v", err)
		}
	}

	for i, word := range words {
		row := i + 2
		values := []interface{}{
			word.Arabic,
			word.Translation,
			word.Pronunciation,
			word.MasteryLevel,
			word.Status().Label(),
			word.LastReviewed.Format("2006-01-02"),
			word.ReviewInterval,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %v", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %v", err)
	}
	return nil
}
