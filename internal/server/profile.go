package server

import (
	"net/http"

	"github.com/example/fisabil/pkg/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.state.GetProfile()
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := decodeJSON(r, &profile); err != nil {
		http.Error(w, "Invalid profile payload", http.StatusBadRequest)
		return
	}

	if profile.Subscription == "" {
		profile.Subscription = models.SubscriptionFree
	}

	if err := s.state.SaveProfile(profile); err != nil {
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	// The greeting personalization may have gone stale
	s.responderMu.Lock()
	s.responder = nil
	s.responderMu.Unlock()

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.state.GetSettings()
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AppSettings
	if err := decodeJSON(r, &settings); err != nil {
		http.Error(w, "Invalid settings payload", http.StatusBadRequest)
		return
	}

	if settings.PlaybackSpeed <= 0 {
		settings.PlaybackSpeed = 1.0
	}

	if err := s.state.SaveSettings(settings); err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
