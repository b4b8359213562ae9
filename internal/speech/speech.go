package speech

import "log"

// Synthesizer reads a text aloud. Calls are fire-and-forget: no completion
// signal is consumed by any caller.
type Synthesizer interface {
	Speak(text, lang string, rate float64)
}

// LogSynthesizer stands in for a platform text-to-speech engine and only
// records what would have been spoken
type LogSynthesizer struct{}

// NewLogSynthesizer creates the stub synthesizer
func NewLogSynthesizer() *LogSynthesizer {
	return &LogSynthesizer{}
}

// Speak logs the utterance instead of producing audio
func (s *LogSynthesizer) Speak(text, lang string, rate float64) {
	log.Printf("speak [%s, rate %.1f]: %s", lang, rate, text)
}
