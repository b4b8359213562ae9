package server

import "net/http"

// handleSpeak forwards a text to the speech synthesizer. The call is
// fire-and-forget; the response only confirms the request was accepted.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string  `json:"text"`
		Lang string  `json:"lang"`
		Rate float64 `json:"rate"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Text == "" {
		http.Error(w, "Invalid speak payload", http.StatusBadRequest)
		return
	}

	settings, err := s.state.GetSettings()
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	if !settings.AudioEnabled {
		http.Error(w, "Audio is disabled in settings", http.StatusConflict)
		return
	}

	if body.Lang == "" {
		body.Lang = "ar-SA"
	}
	if body.Rate <= 0 {
		body.Rate = settings.PlaybackSpeed
	}

	s.speaker.Speak(body.Text, body.Lang, body.Rate)
	w.WriteHeader(http.StatusAccepted)
}
