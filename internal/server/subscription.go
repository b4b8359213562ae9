package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/fisabil/internal/payment"
	"github.com/example/fisabil/pkg/models"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, payment.Plans())
}

// handleSubscribe charges the selected plan and rewrites the profile's
// subscription tier. Downgrading to free skips the payment processor.
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Plan string `json:"plan"`
	}
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, "Invalid subscription payload", http.StatusBadRequest)
		return
	}

	plan, err := payment.PlanByID(body.Plan)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var receipt *payment.Receipt
	if plan.ID != models.SubscriptionFree {
		receipt, err = s.payments.Charge(r.Context(), plan)
		if err != nil {
			http.Error(w, fmt.Sprintf("Payment failed: %v", err), http.StatusBadGateway)
			return
		}
	}

	profile, err := s.state.GetProfile()
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	profile.Subscription = plan.ID
	if profile.SignupDate == "" {
		profile.SignupDate = time.Now().Format(time.RFC3339)
	}
	if err := s.state.SaveProfile(profile); err != nil {
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"receipt": receipt,
	})
}
