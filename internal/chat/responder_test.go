package chat

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingPersonalizedOnce(t *testing.T) {
	r := New("Yasmine")

	first := r.Respond("Bonjour !")
	assert.Contains(t, first.Text, "Yasmine")
	assert.Equal(t, "السَّلامُ عَلَيْكُم", first.Arabic)

	second := r.Respond("bonjour")
	assert.NotContains(t, second.Text, "Yasmine", "personalization is one-time")
}

func TestGreetingWithoutProfile(t *testing.T) {
	r := New("")
	reply := r.Respond("Salut")
	assert.Equal(t, "Salam ! Que veux-tu apprendre aujourd'hui ?", reply.Text)
}

func TestKeywordIntents(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantText   string
		wantArabic bool
	}{
		{"thanks", "Merci beaucoup", "plaisir", true},
		{"learn", "Je veux apprendre l'arabe", "leçon", false},
		{"translate", "Peux-tu traduire un mot ?", "traduire", false},
		{"alphabet", "Montre-moi l'alphabet", "28 lettres", true},
		{"numbers", "Comment compter en arabe ?", "Comptons", true},
		{"scan", "Je veux scanner un texte", "Scanner", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := New("").Respond(tt.input)
			assert.Contains(t, reply.Text, tt.wantText)
			if tt.wantArabic {
				assert.NotEmpty(t, reply.Arabic)
				assert.NotEmpty(t, reply.Transliteration)
			}
		})
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	reply := New("").Respond("MERCI")
	assert.Contains(t, reply.Text, "plaisir")
}

func TestFirstMatchWins(t *testing.T) {
	// Contains both a greeting and a learn request; greeting is first in
	// the rule order
	reply := New("Nora").Respond("Bonjour, je veux apprendre")
	assert.Contains(t, reply.Text, "Nora")
}

func TestConcurrentRespond(t *testing.T) {
	r := New("Amina")

	const goroutines = 8
	replies := make(chan Reply, goroutines*2)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			replies <- r.Respond("bonjour")
			replies <- r.Respond("xyzzy")
		}()
	}
	wg.Wait()
	close(replies)

	personalized := 0
	for reply := range replies {
		require.NotEmpty(t, reply.Text)
		if strings.Contains(reply.Text, "Amina") {
			personalized++
		}
	}
	assert.Equal(t, 1, personalized, "exactly one caller gets the personalized greeting")
}

func TestFallbackForUnknownInput(t *testing.T) {
	reply := New("").Respond("xyzzy")
	require.NotEmpty(t, reply.Text)
	assert.Contains(t, fallbacks, reply.Text)
	assert.Empty(t, reply.Arabic)
}
