package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/example/fisabil/pkg/models"
	"github.com/google/uuid"
)

// Plan describes a subscription tier shown on the subscription screen
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

// Receipt confirms a successful charge
type Receipt struct {
	ID        string    `json:"id"`
	Plan      string    `json:"plan"`
	Amount    string    `json:"amount"`
	ChargedAt time.Time `json:"chargedAt"`
}

// Processor charges a subscription plan. The real system plugs a payment
// provider in here.
type Processor interface {
	Charge(ctx context.Context, plan Plan) (*Receipt, error)
}

// Plans returns the available subscription tiers
func Plans() []Plan {
	return []Plan{
		{
			ID:          models.SubscriptionFree,
			Name:        "Découverte",
			Price:       "0€",
			Period:      "mois",
			Description: "Pour commencer ton apprentissage",
			Features: []string{
				"3 leçons par jour",
				"10 scans par mois",
				"Vocabulaire limité à 50 mots",
			},
		},
		{
			ID:          models.SubscriptionPremium,
			Name:        "Premium",
			Price:       "9,99€",
			Period:      "mois",
			Description: "L'expérience complète",
			Popular:     true,
			Features: []string{
				"Leçons illimitées",
				"Scans illimités",
				"Vocabulaire illimité",
				"Audio HD",
				"Statistiques avancées",
			},
		},
	}
}

// PlanByID looks up a plan by its identifier
func PlanByID(id string) (Plan, error) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("unknown plan %q", id)
}

// SimulatedProcessor stands in for a payment provider: it waits a fixed
// delay and always succeeds
type SimulatedProcessor struct {
	Delay time.Duration
}

// NewSimulatedProcessor creates the stub with its default processing delay
func NewSimulatedProcessor() *SimulatedProcessor {
	return &SimulatedProcessor{Delay: 2 * time.Second}
}

// Charge returns a receipt after the delay. The stub never declines.
func (p *SimulatedProcessor) Charge(ctx context.Context, plan Plan) (*Receipt, error) {
	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Receipt{
		ID:        uuid.NewString(),
		Plan:      plan.ID,
		Amount:    plan.Price,
		ChargedAt: time.Now(),
	}, nil
}
