package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/internal/extract"
	"github.com/example/fisabil/internal/payment"
	"github.com/example/fisabil/internal/quiz"
	"github.com/example/fisabil/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSpeaker captures utterances instead of logging them
type recordingSpeaker struct {
	texts []string
}

func (s *recordingSpeaker) Speak(text, lang string, rate float64) {
	s.texts = append(s.texts, text)
}

func TestMain(m *testing.M) {
	if err := database.ConnectInMemory(); err != nil {
		panic(err)
	}
	code := m.Run()
	database.Close()
	os.Exit(code)
}

func newTestServer(t *testing.T) (*Server, *recordingSpeaker) {
	t.Helper()
	for _, table := range []string{"vocabulary", "scans", "app_state"} {
		_, err := database.DB.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}

	speaker := &recordingSpeaker{}
	srv := New(
		&extract.SimulatedExtractor{Delay: time.Millisecond},
		speaker,
		&payment.SimulatedProcessor{Delay: time.Millisecond},
	)
	return srv, speaker
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func TestProfileDefaultsAndSave(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.UserProfile
	decode(t, rec, &profile)
	assert.Empty(t, profile.Name)
	assert.Equal(t, models.SubscriptionFree, profile.Subscription)

	profile.Name = "Nora"
	profile.Teacher = "Karim"
	rec = doJSON(t, srv, http.MethodPut, "/api/profile", profile)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/profile", nil)
	var reloaded models.UserProfile
	decode(t, rec, &reloaded)
	assert.Equal(t, "Nora", reloaded.Name)
}

func TestScanToVocabularyFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/scans", map[string]string{"image": ""})
	require.Equal(t, http.StatusCreated, rec.Code)

	var doc models.ScannedDocument
	decode(t, rec, &doc)
	require.NotEmpty(t, doc.ID)
	assert.Contains(t, doc.Content, "بِسْمِ")
	assert.Equal(t, models.CountWords(doc.Content), doc.WordCount)

	// Extract vocabulary from the scan
	rec = doJSON(t, srv, http.MethodPost, "/api/scans/"+doc.ID+"/vocabulary", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var words []models.VocabularyWord
	decode(t, rec, &words)
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.Equal(t, 0.1, w.MasteryLevel)
		assert.Equal(t, 1, w.ReviewInterval)
		assert.NotZero(t, w.ID)
	}

	// Scan history lists the document
	rec = doJSON(t, srv, http.MethodGet, "/api/scans", nil)
	var docs []models.ScannedDocument
	decode(t, rec, &docs)
	assert.Len(t, docs, 1)
}

func TestReviewEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	word := models.VocabularyWord{
		Arabic:         "كتاب",
		MasteryLevel:   0.9,
		LastReviewed:   time.Now().UTC(),
		ReviewInterval: 7,
	}
	require.NoError(t, srv.vocab.Create(&word))

	rec := doJSON(t, srv, http.MethodPost,
		fmt.Sprintf("/api/vocabulary/%d/review", word.ID),
		map[string]float64{"masteryLevel": 0.6})
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		models.VocabularyWord
		Status      models.MasteryStatus `json:"status"`
		StatusLabel string               `json:"statusLabel"`
	}
	decode(t, rec, &view)
	assert.Equal(t, 0.6, view.MasteryLevel)
	assert.Equal(t, 3, view.ReviewInterval)
	assert.Equal(t, models.StatusIntermediate, view.Status)
	assert.Equal(t, "Intermédiaire", view.StatusLabel)

	// Persisted
	reloaded, err := srv.vocab.GetByID(word.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.6, reloaded.MasteryLevel)
}

func TestVocabularyStatsEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/vocabulary/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]float64
	decode(t, rec, &stats)
	assert.Equal(t, 0.0, stats["total"])
	assert.Equal(t, 0.0, stats["masteryPercentage"])
}

func TestVocabularyFilter(t *testing.T) {
	srv, _ := newTestServer(t)

	now := time.Now().UTC()
	words := []models.VocabularyWord{
		{Arabic: "قلم", MasteryLevel: 0.1, LastReviewed: now, ReviewInterval: 1},
		{Arabic: "باب", MasteryLevel: 0.9, LastReviewed: now, ReviewInterval: 7},
	}
	_, err := srv.vocab.BulkCreate(words)
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/api/vocabulary?filter=mastered", nil)
	var mastered []json.RawMessage
	decode(t, rec, &mastered)
	assert.Len(t, mastered, 1)

	rec = doJSON(t, srv, http.MethodGet, "/api/vocabulary?filter=new", nil)
	var fresh []json.RawMessage
	decode(t, rec, &fresh)
	assert.Len(t, fresh, 1)
}

func TestReviewSessionMode(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/review/session", map[string]string{"mode": "quick"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/review/session", nil)
	var session struct {
		Mode models.ReviewMode `json:"mode"`
	}
	decode(t, rec, &session)
	assert.Equal(t, models.ReviewQuick, session.Mode)

	rec = doJSON(t, srv, http.MethodPut, "/api/review/session", map[string]string{"mode": "cramming"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpeakRespectsSettings(t *testing.T) {
	srv, speaker := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/audio/speak", map[string]interface{}{"text": "مرحبا"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, speaker.texts, 1)
	assert.Equal(t, "مرحبا", speaker.texts[0])

	// Disabling audio blocks the call
	settings := models.DefaultSettings()
	settings.AudioEnabled = false
	require.NoError(t, srv.state.SaveSettings(settings))

	rec = doJSON(t, srv, http.MethodPost, "/api/audio/speak", map[string]interface{}{"text": "مرحبا"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, speaker.texts, 1)
}

func TestSubscribeUpgradesProfile(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/subscription", map[string]string{"plan": "premium"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Profile models.UserProfile `json:"profile"`
		Receipt *payment.Receipt   `json:"receipt"`
	}
	decode(t, rec, &result)
	assert.Equal(t, models.SubscriptionPremium, result.Profile.Subscription)
	require.NotNil(t, result.Receipt)
	assert.NotEmpty(t, result.Receipt.ID)

	// Downgrading to free skips the processor and clears no other field
	rec = doJSON(t, srv, http.MethodPost, "/api/subscription", map[string]string{"plan": "free"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &result)
	assert.Equal(t, models.SubscriptionFree, result.Profile.Subscription)
	assert.Nil(t, result.Receipt)

	rec = doJSON(t, srv, http.MethodPost, "/api/subscription", map[string]string{"plan": "platinum"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	profile := models.DefaultProfile()
	profile.Name = "Yasmine"
	require.NoError(t, srv.state.SaveProfile(profile))

	rec := doJSON(t, srv, http.MethodPost, "/api/chat", map[string]string{"text": "Bonjour"})
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		Text   string `json:"text"`
		Arabic string `json:"arabic"`
	}
	decode(t, rec, &reply)
	assert.Contains(t, reply.Text, "Yasmine")
	assert.NotEmpty(t, reply.Arabic)
}

func TestChatSurvivesConcurrentRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	profile := models.DefaultProfile()
	profile.Name = "Samir"
	require.NoError(t, srv.state.SaveProfile(profile))

	// Chat messages race against a profile save that resets the responder
	const goroutines = 8
	codes := make(chan int, goroutines+1)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			json.NewEncoder(&buf).Encode(map[string]string{"text": "Bonjour"})
			req := httptest.NewRequest(http.MethodPost, "/api/chat", &buf)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		var buf bytes.Buffer
		json.NewEncoder(&buf).Encode(profile)
		req := httptest.NewRequest(http.MethodPut, "/api/profile", &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		codes <- rec.Code
	}()
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestGradeQuizEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	questions := []quiz.Question{
		{Word: models.VocabularyWord{ID: 1, Arabic: "كتاب", Translation: "livre"}, Options: []string{"livre", "stylo"}, CorrectIndex: 0},
		{Word: models.VocabularyWord{ID: 2, Arabic: "قلم", Translation: "stylo"}, Options: []string{"porte", "stylo"}, CorrectIndex: 1},
		{Word: models.VocabularyWord{ID: 3, Arabic: "باب", Translation: "porte"}, Options: []string{"porte", "livre"}, CorrectIndex: 0},
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/review/quiz/grade", map[string]interface{}{
		"questions": questions,
		"answers":   []int{0, 0, -1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Correct int     `json:"correct"`
		Total   int     `json:"total"`
		Score   float64 `json:"score"`
	}
	decode(t, rec, &result)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.InDelta(t, 33.3, result.Score, 0.1)

	rec = doJSON(t, srv, http.MethodPost, "/api/review/quiz/grade", map[string]interface{}{
		"questions": []quiz.Question{},
		"answers":   []int{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLessonEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/chat/lesson", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Lesson   string                `json:"lesson"`
		Progress models.LessonProgress `json:"progress"`
	}
	decode(t, rec, &view)
	assert.Equal(t, "La lettre Alif", view.Lesson)

	rec = doJSON(t, srv, http.MethodPost, "/api/chat/lesson/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Equal(t, 1, view.Progress.Message)

	rec = doJSON(t, srv, http.MethodPost, "/api/chat/lesson/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Equal(t, "La lettre Ba", view.Lesson)

	rec = doJSON(t, srv, http.MethodPost, "/api/chat/lesson/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	assert.Equal(t, models.LessonProgress{Lesson: 1, Message: 0}, view.Progress)
}

func TestDeleteWord(t *testing.T) {
	srv, _ := newTestServer(t)

	word := models.VocabularyWord{Arabic: "باب", MasteryLevel: 0.1, LastReviewed: time.Now().UTC(), ReviewInterval: 1}
	require.NoError(t, srv.vocab.Create(&word))

	rec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/vocabulary/%d", word.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := srv.vocab.GetByID(word.ID)
	assert.Error(t, err)
}
