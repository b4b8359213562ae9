package models

// Subscription tiers
const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// UserProfile is the single user record produced by onboarding and edited
// by the profile and subscription screens. It is always read and written
// as a whole object.
type UserProfile struct {
	Name          string   `json:"name"`
	Age           string   `json:"age"`
	Gender        string   `json:"gender"`
	Language      string   `json:"language"` // interface language: fr, en, es, de
	Level         string   `json:"level"`
	Goals         []string `json:"goals"`
	Frequency     string   `json:"frequency"`
	LearningStyle []string `json:"learningStyle"`
	Teacher       string   `json:"teacher"` // chosen virtual teacher name
	Subscription  string   `json:"subscription"`
	SignupDate    string   `json:"signupDate"`
}

// DefaultProfile returns the profile used when nothing has been saved yet.
// Fields render as empty placeholders on the client.
func DefaultProfile() UserProfile {
	return UserProfile{
		Language:     "fr",
		Subscription: SubscriptionFree,
	}
}
