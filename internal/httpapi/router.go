package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/httpapi/handlers"
	"github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	TwoFA   *handlers.TwoFAHandler
	Mood    *handlers.MoodHandler
	Journal *handlers.JournalHandler
	Affirm  *handlers.AffirmHandler
	Puzzle  *handlers.PuzzleHandler
	Insight *handlers.InsightHandler
	Admin   *handlers.AdminHandler
}

// NewRouter wires the public HTTP surface. Everything under /api/v1 requires
// a valid bearer token; sensitive 2FA operations and insight generation are
// additionally rate limited per user.
func NewRouter(h Handlers, auth *middleware.Auth, limiter *middleware.RateLimiter, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/openapi.json", handlers.OpenAPIJSON)
	r.Get("/docs", handlers.SwaggerUI)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Post("/auth/logout", h.Auth.Logout)

		r.Route("/2fa", func(r chi.Router) {
			r.Post("/enroll", h.TwoFA.Enroll)
			r.Get("/qr", h.TwoFA.QR)
			r.Get("/status", h.TwoFA.Status)
			r.Delete("/", h.TwoFA.Disable)

			r.Group(func(r chi.Router) {
				r.Use(limiter.Limit("2fa", 10, time.Minute, middleware.ByUser))
				r.Post("/confirm", h.TwoFA.Confirm)
				r.Post("/verify", h.TwoFA.Verify)
				r.Post("/backup", h.TwoFA.ConsumeBackup)
			})
		})

		r.Route("/moods", func(r chi.Router) {
			r.Post("/", h.Mood.Log)
			r.Get("/", h.Mood.List)
			r.Get("/summary", h.Mood.Summary)
			r.Delete("/{id}", h.Mood.Delete)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Post("/", h.Journal.Create)
			r.Get("/", h.Journal.List)
			r.Get("/{id}", h.Journal.Get)
			r.Put("/{id}", h.Journal.Update)
			r.Delete("/{id}", h.Journal.Delete)
		})

		r.Route("/affirmations", func(r chi.Router) {
			r.Get("/daily", h.Affirm.Daily)
			r.Get("/random", h.Affirm.Random)
		})

		r.Route("/puzzle", func(r chi.Router) {
			r.Get("/daily", h.Puzzle.Daily)
			r.Post("/check", h.Puzzle.Check)
		})

		r.With(limiter.Limit("insights", 3, time.Hour, middleware.ByUser)).
			Post("/insights", h.Insight.Generate)

		r.Post("/admin/seed", h.Admin.Seed)
	})

	return r
}
