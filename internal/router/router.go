package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wearly/stylist-service/internal/auth"
	"github.com/wearly/stylist-service/internal/csrf"
	"github.com/wearly/stylist-service/internal/handler"
)

// Setup wires the API. Everything lives under /api/; mutating routes
// require a CSRF token and everything except auth entry points requires a
// bearer token. Media files are served statically from mediaDir.
func Setup(h *handler.Handler, tokens *auth.Tokens, csrfStore *csrf.Store, mediaDir string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", healthCheck)

	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir)))
	r.Get("/media/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(csrf.Middleware(csrfStore))

		r.Get("/csrf", h.CSRFToken)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/activate", h.Activate)
			r.Post("/password-reset", h.RequestPasswordReset)
			r.Post("/password-reset/confirm", h.ConfirmPasswordReset)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(tokens))
				r.Post("/logout", h.Logout)
				r.Get("/profile", h.Me)
				r.Put("/profile", h.UpdateProfile)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/wardrobe", func(r chi.Router) {
				r.Post("/items/upload", h.AddItem)
				r.Get("/items", h.ListItems)
				r.Get("/items/{itemID}", h.GetItem)
				r.Put("/items/{itemID}", h.UpdateItem)
				r.Delete("/items/{itemID}", h.DeleteItem)
				r.Post("/items/{itemID}/restore", h.RestoreItem)
				r.Post("/items/{itemID}/favorite", h.ToggleFavorite)
				r.Post("/items/{itemID}/worn", h.MarkWorn)
				r.Get("/stats", h.WardrobeStats)
				r.Get("/search-suggestions", h.SearchSuggestions)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Post("/generate", h.Recommend)
				r.Get("/recent", h.SuggestionHistory)
				r.Get("/{suggestionID}", h.GetSuggestion)
				r.Delete("/{suggestionID}", h.DismissSuggestion)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Post("/submit", h.SubmitFeedback)
				r.Get("/history", h.FeedbackHistory)
				r.Get("/summary", h.FeedbackSummary)
			})

			r.Get("/weather", h.Weather)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
