package extract

import (
	"context"
	"time"
)

// TextExtractor turns a captured image into raw text. The real system
// plugs an OCR engine in here.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// Canned scripture text returned by the simulated extractor
const simulatedText = `بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ
الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ
الرَّحْمَٰنِ الرَّحِيمِ
مَالِكِ يَوْمِ الدِّينِ`

// SimulatedExtractor stands in for an OCR engine: it waits a fixed delay
// and returns a canned Arabic text regardless of the input image.
type SimulatedExtractor struct {
	Delay time.Duration
}

// NewSimulatedExtractor creates the stub with its default processing delay
func NewSimulatedExtractor() *SimulatedExtractor {
	return &SimulatedExtractor{Delay: 2 * time.Second}
}

// Extract ignores the image and returns the canned text after the delay
func (e *SimulatedExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	select {
	case <-time.After(e.Delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return simulatedText, nil
}
