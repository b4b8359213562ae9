package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/fisabil/internal/database"
	"github.com/example/fisabil/internal/extract"
	"github.com/example/fisabil/internal/payment"
	"github.com/example/fisabil/internal/reminder"
	"github.com/example/fisabil/internal/server"
	"github.com/example/fisabil/internal/speech"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
	}
}

func main() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	srv := server.New(
		extract.NewSimulatedExtractor(),
		speech.NewLogSynthesizer(),
		payment.NewSimulatedProcessor(),
	)

	var reminders *reminder.Scheduler
	if os.Getenv("ENABLE_REMINDERS") != "false" {
		reminders = reminder.New(reminder.LogNotifier{})
		reminders.Start()
		defer reminders.Stop()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("Listening on %s. Press Ctrl+C to stop.", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped successfully")
}
