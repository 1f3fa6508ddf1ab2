package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"flashquiz-backend/internal/config"
	"flashquiz-backend/internal/handlers"
	"flashquiz-backend/internal/router"
	"flashquiz-backend/internal/services"
	"flashquiz-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting FlashQuiz Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Session Store ────
	sessionStore := session.NewStore()
	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	log.Println("✓ In-memory session store ready")

	// ──── Step 3: Initialize Gemini Client (optional) ────
	// Without a key the server still extracts documents and previews
	// learning points; only quiz generation is unavailable.
	var quizService *services.QuizService
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠ GEMINI_API_KEY not set — quiz generation disabled")
	} else {
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		quizService = services.NewQuizService(geminiService)
		log.Println("✓ Gemini Flash client initialized")
	}

	// ──── Initialize Services & Handlers ────
	fileExtractService := services.NewFileExtractService()
	documentHandler := handlers.NewDocumentHandler(fileExtractService, sessionStore, cookieStore, cfg.MaxUploadMB)
	quizHandler := handlers.NewQuizHandler(quizService, sessionStore, cookieStore)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(documentHandler, quizHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full generation batch runs inline
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ FlashQuiz Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
