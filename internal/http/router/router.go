// Package router wires every route of the app onto a chi router.
//
// Route table:
//
//	GET        /                  → home page
//	GET, POST  /login             → login form
//	GET, POST  /register          → registration form
//	GET, POST  /book-ride         → ride booking form
//	GET        /forgot-password   → placeholder
//	GET        /terms             → placeholder
//	GET        /privacy           → placeholder
//	POST       /api/forms/{form}  → JSON submission of any form
//	GET        /api/attempts      → recorded submission attempts (ExposeAttempts only)
//	GET        /healthz           → liveness
//	GET        /metrics           → Prometheus metrics
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/airbear/internal/form"
	"github.com/aanand-mishra/airbear/internal/http/handlers/api"
	"github.com/aanand-mishra/airbear/internal/http/handlers/page"
	"github.com/aanand-mishra/airbear/internal/metrics"
	"github.com/aanand-mishra/airbear/internal/pages"
	"github.com/aanand-mishra/airbear/internal/storage"
	"github.com/aanand-mishra/airbear/internal/submission"
	"github.com/aanand-mishra/airbear/internal/view"
)

// Deps are everything the routes need.
type Deps struct {
	Store   storage.Storage
	Metrics *metrics.Metrics
	Mode    form.Mode

	// ExposeAttempts mounts GET /api/attempts. Enabled in development only.
	ExposeAttempts bool
}

// New returns the app's root handler.
func New(deps Deps) http.Handler {
	svc := submission.New(deps.Store, deps.Metrics)
	pd := page.Deps{Service: svc, Metrics: deps.Metrics, Mode: deps.Mode}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", page.Home(deps.Metrics))

	forms := []struct {
		def    pages.Definition
		render page.Renderer
	}{
		{pages.Login, view.Login},
		{pages.Register, view.Register},
		{pages.BookRide, view.BookRide},
	}
	for _, f := range forms {
		r.Get(f.def.Path, page.Show(f.def, f.render, pd))
		r.Post(f.def.Path, page.Submit(f.def, f.render, pd))
	}

	r.Get("/forgot-password", page.Placeholder("forgot-password", "Forgot Password", deps.Metrics))
	r.Get("/terms", page.Placeholder("terms", "Terms of Service", deps.Metrics))
	r.Get("/privacy", page.Placeholder("privacy", "Privacy Policy", deps.Metrics))

	r.Route("/api", func(r chi.Router) {
		r.Post("/forms/{form}", api.Submit(svc, deps.Mode))
		if deps.ExposeAttempts {
			r.Get("/attempts", api.ListAttempts(deps.Store))
		}
	})

	r.Get("/healthz", api.Health())
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}

// requestLogger logs one line per request once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			slog.Info("request served",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
