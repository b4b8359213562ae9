package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/example/fisabil/internal/chat"
	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/internal/extract"
	"github.com/example/fisabil/internal/payment"
	"github.com/example/fisabil/internal/review"
	"github.com/example/fisabil/internal/speech"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Server wires the stores, the review scheduler, and the simulated
// collaborators behind the app's HTTP API
type Server struct {
	router    *mux.Router
	vocab     *database.VocabularyRepository
	scans     *database.ScanRepository
	state     *database.StateRepository
	scheduler *review.Scheduler
	extractor extract.TextExtractor
	speaker   speech.Synthesizer
	payments  payment.Processor

	responderMu sync.Mutex
	responder   *chat.Responder
}

// New creates a server. The collaborators are injectable so production
// implementations can replace the simulations without touching handlers.
func New(extractor extract.TextExtractor, speaker speech.Synthesizer, payments payment.Processor) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		vocab:     database.NewVocabularyRepository(),
		scans:     database.NewScanRepository(),
		state:     database.NewStateRepository(),
		scheduler: review.New(),
		extractor: extractor,
		speaker:   speaker,
		payments:  payments,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Profile and settings
	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handleSaveProfile).Methods(http.MethodPut)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleSaveSettings).Methods(http.MethodPut)

	// Vocabulary
	api.HandleFunc("/vocabulary", s.handleListVocabulary).Methods(http.MethodGet)
	api.HandleFunc("/vocabulary/stats", s.handleVocabularyStats).Methods(http.MethodGet)
	api.HandleFunc("/vocabulary/export", s.handleExportVocabulary).Methods(http.MethodGet)
	api.HandleFunc("/vocabulary/import", s.handleImportVocabulary).Methods(http.MethodPost)
	api.HandleFunc("/vocabulary/{id:[0-9]+}/review", s.handleReviewWord).Methods(http.MethodPost)
	api.HandleFunc("/vocabulary/{id:[0-9]+}", s.handleDeleteWord).Methods(http.MethodDelete)

	// Scan flow
	api.HandleFunc("/scans", s.handleCreateScan).Methods(http.MethodPost)
	api.HandleFunc("/scans", s.handleListScans).Methods(http.MethodGet)
	api.HandleFunc("/scans/{id}/vocabulary", s.handleExtractVocabulary).Methods(http.MethodPost)
	api.HandleFunc("/scans/{id}", s.handleGetScan).Methods(http.MethodGet)
	api.HandleFunc("/scans/{id}", s.handleDeleteScan).Methods(http.MethodDelete)

	// Chat
	api.HandleFunc("/chat", s.handleChatMessage).Methods(http.MethodPost)
	api.HandleFunc("/chat/lesson", s.handleCurrentLesson).Methods(http.MethodGet)
	api.HandleFunc("/chat/lesson/advance", s.handleAdvanceLesson).Methods(http.MethodPost)
	api.HandleFunc("/chat/lesson/next", s.handleNextLesson).Methods(http.MethodPost)
	api.HandleFunc("/chat/lesson/restart", s.handleRestartLesson).Methods(http.MethodPost)

	// Audio
	api.HandleFunc("/audio/documents", s.handleListScans).Methods(http.MethodGet)
	api.HandleFunc("/audio/speak", s.handleSpeak).Methods(http.MethodPost)

	// Subscription
	api.HandleFunc("/subscription/plans", s.handleListPlans).Methods(http.MethodGet)
	api.HandleFunc("/subscription", s.handleSubscribe).Methods(http.MethodPost)

	// Review sessions
	api.HandleFunc("/review/session", s.handleGetSession).Methods(http.MethodGet)
	api.HandleFunc("/review/session", s.handleSetSession).Methods(http.MethodPut)
	api.HandleFunc("/review/quiz", s.handleQuiz).Methods(http.MethodGet)
	api.HandleFunc("/review/quiz/grade", s.handleGradeQuiz).Methods(http.MethodPost)
}

// Handler returns the full middleware-wrapped handler
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "capacitor://localhost", "http://localhost"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin"},
		MaxAge:         86400,
	})
	return c.Handler(s.router)
}

// respondJSON writes v as the JSON response body
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// chatResponder lazily builds the responder so the greeting can be
// personalized with whatever profile exists at first use. Handlers run on
// separate goroutines, so the shared instance is built under the lock.
func (s *Server) chatResponder() *chat.Responder {
	s.responderMu.Lock()
	defer s.responderMu.Unlock()
	if s.responder == nil {
		profile, err := s.state.GetProfile()
		if err != nil {
			log.Printf("Error loading profile for chat: %v", err)
		}
		s.responder = chat.New(profile.Name)
	}
	return s.responder
}
