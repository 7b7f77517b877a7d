package api

import (
	"net/http"

	"github.com/creditclimb/engine/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the engine's HTTP routes.
func NewRouter(
	guidanceHandler *GuidanceHandler,
	preferenceHandler *PreferenceHandler,
	sessionHandler *SessionHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/guidance/decide", guidanceHandler.Decide)

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Route("/guidance", func(r chi.Router) {
			r.Get("/", guidanceHandler.GetTrigger)
			r.Post("/evaluate", guidanceHandler.Evaluate)
			r.Post("/dismiss", guidanceHandler.Dismiss)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", preferenceHandler.Get)
			r.Put("/", preferenceHandler.Update)
			r.Post("/orientation", preferenceHandler.CompleteOrientation)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Start)
			r.Get("/current", sessionHandler.Get)
			r.Post("/current/choices", sessionHandler.SubmitChoice)
			r.Post("/current/next", sessionHandler.Next)
		})
	})

	return r
}
