// Package router sets up all HTTP routes and middleware chains for the
// blog. Content pages live under a locale prefix (/en/, /sw/); the
// language switcher and health check sit outside it.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"habari/internal/handlers"
	"habari/internal/i18n"
	"habari/internal/middleware"
	"habari/internal/session"
	"habari/web"
)

// Deps bundles everything the router needs wired up.
type Deps struct {
	Sessions      *session.Store
	Public        *handlers.Public
	Comments      *handlers.Comments
	Auth          *handlers.Auth
	Subscriptions *handlers.Subscriptions
}

// formRateLimit guards the public form endpoints against abuse.
const (
	formRateLimit  = 30
	formRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped
// on shutdown.
func New(d Deps) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CSRF)
	r.Use(middleware.LoadSession(d.Sessions))

	limiter := middleware.NewRateLimiter(formRateLimit, formRateWindow)

	// Health check — no locale, no session use.
	r.Get("/health", healthHandler)

	// Static assets. The embedded tree already carries the static/
	// prefix, so no StripPrefix is needed.
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	// Language switcher lives outside the locale prefix so one form
	// serves every page.
	r.Post("/set-language/", handlers.SetLanguage)

	// Bare root redirects into the default locale.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/"+i18n.Default+"/", http.StatusSeeOther)
	})

	// Every content page exists once per locale.
	for _, lang := range i18n.Supported {
		r.Route("/"+lang, func(r chi.Router) {
			r.Use(middleware.Language(lang))

			r.Get("/", d.Public.Home)
			r.Get("/post/{slug}/", d.Public.PostDetail)
			r.Get("/category/{slug}/", d.Public.CategoryPosts)
			r.Get("/search/", d.Public.Search)
			r.Get("/about/", d.Public.About)
			r.Get("/contact/", d.Public.ContactPage)

			r.Get("/login/", d.Auth.LoginPage)
			r.Get("/register/", d.Auth.RegisterPage)

			// Likes and logout also work as plain links.
			r.Get("/post/{slug}/comment/{id}/like/", d.Comments.Like)
			r.Get("/logout/", d.Auth.Logout)

			// Form submissions are rate limited per client IP.
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)

				r.Post("/post/{slug}/comment/", d.Comments.Submit)
				r.Post("/post/{slug}/comment/{id}/like/", d.Comments.Like)
				r.Post("/subscribe/", d.Subscriptions.Submit)
				r.Post("/contact/", d.Public.ContactSubmit)
				r.Post("/login/", d.Auth.LoginSubmit)
				r.Post("/register/", d.Auth.RegisterSubmit)
				r.Post("/logout/", d.Auth.Logout)
			})
		})
	}

	r.NotFound(d.Public.NotFound)

	return r, limiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
