package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	if err := database.ConnectInMemory(); err != nil {
		panic(err)
	}
	code := m.Run()
	database.Close()
	os.Exit(code)
}

func TestWriteVocabulary(t *testing.T) {
	words := []models.VocabularyWord{
		{
			Arabic:         "كتاب",
			Translation:    "livre",
			Pronunciation:  "kitab",
			MasteryLevel:   0.9,
			LastReviewed:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			ReviewInterval: 7,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVocabulary(&buf, words))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arabic", rows[0][0])
	assert.Equal(t, "كتاب", rows[1][0])
	assert.Equal(t, "Maîtrisé", rows[1][4])
	assert.Equal(t, "2026-08-01", rows[1][5])
}

func TestImportWordsFromCSV(t *testing.T) {
	_, err := database.DB.Exec("DELETE FROM vocabulary")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "words.csv")
	csv := "arabic,translation,pronunciation\n" +
		"كتاب,livre,kitab\n" +
		"قلم,stylo,qalam\n" +
		",ignored,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	result, err := ImportWords(path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	words, err := database.NewVocabularyRepository().GetAll()
	require.NoError(t, err)
	require.Len(t, words, 2)
	for _, w := range words {
		assert.Equal(t, 0.1, w.MasteryLevel)
		assert.Equal(t, 1, w.ReviewInterval)
	}
}
