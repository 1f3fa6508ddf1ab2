package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"flashquiz-backend/internal/handlers"
	"flashquiz-backend/internal/middleware"
)

func New(
	documentHandler *handlers.DocumentHandler,
	quizHandler *handlers.QuizHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Uploads and model calls are the costly paths (20 req/min per IP)
	heavyLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Document Routes ────
		r.Route("/documents", func(r chi.Router) {
			r.Get("/supported-formats", documentHandler.SupportedFormats)

			r.Group(func(r chi.Router) {
				r.Use(heavyLimiter.Middleware)
				r.Post("/extract", documentHandler.Upload)
			})
		})

		// ──── Quiz Routes ────
		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", quizHandler.Get)
			r.Post("/answer", quizHandler.Answer)
			r.Post("/submit", quizHandler.Submit)
			r.Post("/reset", quizHandler.Reset)

			r.Group(func(r chi.Router) {
				r.Use(heavyLimiter.Middleware)
				r.Post("/generate", quizHandler.Generate)
			})
		})
	})

	return r
}
