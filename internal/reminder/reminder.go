package reminder

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/internal/review"
	"github.com/go-co-op/gocron"
)

// Default window during which review reminders may fire
const (
	DefaultStartHour = 8
	DefaultEndHour   = 21
)

// Notifier delivers a review reminder to the user
type Notifier interface {
	RemindDueWords(count int) error
}

// LogNotifier writes reminders to the application log. A push-notification
// transport would implement Notifier instead.
type LogNotifier struct{}

// RemindDueWords logs the reminder
func (LogNotifier) RemindDueWords(count int) error {
	log.Printf("Reminder: %d word(s) due for review", count)
	return nil
}

// Scheduler runs the periodic due-word check
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	review    *review.Scheduler
}

// New creates a scheduler instance
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		review:    review.New(),
	}
}

// Start begins the hourly reminder check in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndNotify)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// hourFromEnv reads an hour override from the environment
func hourFromEnv(name string, fallback int) int {
	if raw := os.Getenv(name); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}

// checkAndNotify fires a reminder when words are due, the user has
// notifications enabled, and the current hour is inside the window
func (s *Scheduler) checkAndNotify() {
	currentHour := time.Now().Hour()
	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	stateRepo := database.NewStateRepository()
	settings, err := stateRepo.GetSettings()
	if err != nil {
		log.Printf("Error loading settings: %v", err)
		return
	}
	if !settings.Notifications {
		return
	}

	vocabRepo := database.NewVocabularyRepository()
	words, err := vocabRepo.GetAll()
	if err != nil {
		log.Printf("Error loading vocabulary: %v", err)
		return
	}

	due := s.review.DueCount(words, time.Now())
	if due == 0 {
		return
	}

	if err := s.notifier.RemindDueWords(due); err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
}

// RunManualCheck forces an immediate due-word check, ignoring the window
func (s *Scheduler) RunManualCheck() error {
	vocabRepo := database.NewVocabularyRepository()
	words, err := vocabRepo.GetAll()
	if err != nil {
		return err
	}

	due := s.review.DueCount(words, time.Now())
	if due > 0 {
		return s.notifier.RemindDueWords(due)
	}
	return nil
}
