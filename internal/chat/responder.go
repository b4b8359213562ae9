package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Reply is what the assistant sends back for one user message. Arabic and
// its transliteration are optional payloads the client can play aloud.
type Reply struct {
	Text            string `json:"text"`
	Arabic          string `json:"arabic,omitempty"`
	Transliteration string `json:"transliteration,omitempty"`
}

// rule maps keyword containment to a reply builder. Rules are evaluated in
// order, first match wins.
type rule struct {
	keywords []string
	build    func(r *Responder) Reply
}

// Responder answers free-text chat messages by matching keywords against a
// fixed list of intents. Every call is independent of prior turns except
// the one-time personalized greeting. Safe for concurrent use.
type Responder struct {
	userName string
	rules    []rule

	mu      sync.Mutex // guards greeted and rand
	greeted bool
	rand    *rand.Rand
}

// New creates a responder. The user name personalizes the first greeting;
// an empty name falls back to a generic one.
func New(userName string) *Responder {
	r := &Responder{
		userName: userName,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	r.rules = []rule{
		{
			keywords: []string{"bonjour", "salut", "salam", "hello"},
			build:    (*Responder).greet,
		},
		{
			keywords: []string{"merci", "thank", "shukran"},
			build: func(*Responder) Reply {
				return Reply{
					Text:            "Avec plaisir ! C'est un bonheur de t'accompagner.",
					Arabic:          "عَفْواً",
					Transliteration: "afwan",
				}
			},
		},
		{
			keywords: []string{"apprendre", "leçon", "lecon", "learn"},
			build: func(*Responder) Reply {
				return Reply{Text: "Super ! Commençons par les lettres de l'alphabet. Ouvre la leçon Alif pour démarrer."}
			},
		},
		{
			keywords: []string{"tradui", "translate"},
			build: func(*Responder) Reply {
				return Reply{Text: "Envoie-moi le mot à traduire, ou scanne un texte pour enrichir ton vocabulaire."}
			},
		},
		{
			keywords: []string{"alphabet", "lettre"},
			build: func(*Responder) Reply {
				return Reply{
					Text:            "L'alphabet arabe compte 28 lettres. Voici les quatre premières :",
					Arabic:          "ا ب ت ث",
					Transliteration: "alif, ba, ta, tha",
				}
			},
		},
		{
			keywords: []string{"nombre", "chiffre", "compter", "number"},
			build: func(*Responder) Reply {
				return Reply{
					Text:            "Comptons ensemble de un à trois :",
					Arabic:          "واحد، اثنان، ثلاثة",
					Transliteration: "wahid, ithnan, thalatha",
				}
			},
		},
		{
			keywords: []string{"scan", "photo", "caméra", "camera"},
			build: func(*Responder) Reply {
				return Reply{Text: "Ouvre l'écran Scanner pour photographier un texte arabe, j'en extrairai le vocabulaire."}
			},
		},
	}
	return r
}

var fallbacks = []string{
	"Je n'ai pas bien compris. Tu peux me demander une leçon, une traduction ou l'alphabet.",
	"Essaie par exemple : \"Apprendre l'alphabet\" ou \"Compter en arabe\".",
	"Hmm, reformule ta question ? Je connais les leçons, les nombres et le scan de textes.",
}

// Respond maps the user's text to a reply. Matching is lowercase substring
// containment over the ordered rule list; unmatched input draws a random
// fallback.
func (r *Responder) Respond(userText string) Reply {
	text := strings.ToLower(userText)
	for _, rule := range r.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.build(r)
			}
		}
	}
	r.mu.Lock()
	pick := r.rand.Intn(len(fallbacks))
	r.mu.Unlock()
	return Reply{Text: fallbacks[pick]}
}

func (r *Responder) greet() Reply {
	reply := Reply{
		Arabic:          "السَّلامُ عَلَيْكُم",
		Transliteration: "as-salamu alaykum",
	}

	r.mu.Lock()
	first := !r.greeted && r.userName != ""
	r.greeted = true
	r.mu.Unlock()

	if first {
		reply.Text = fmt.Sprintf("Salam %s ! Prêt à continuer ton voyage arabe ?", r.userName)
	} else {
		reply.Text = "Salam ! Que veux-tu apprendre aujourd'hui ?"
	}
	return reply
}
