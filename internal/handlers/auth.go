// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"habari/internal/flash"
	"habari/internal/i18n"
	"habari/internal/middleware"
	"habari/internal/render"
	"habari/internal/session"
	"habari/internal/store"
)

// Auth groups the registration, login, and logout handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{renderer: renderer, sessions: sessions, users: users}
}

// safeNext returns next if it is a site-local path, otherwise "".
// Absolute URLs and protocol-relative paths are rejected so the
// post-login redirect can never leave the site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return next
}

// RegisterPage renders the registration form. Logged-in users are sent
// back to the home page.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/"+lang+"/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "register", &render.PageData{
		Title: i18n.T(lang, "register_heading"),
	})
}

// RegisterSubmit processes the registration form. Validation failures
// flash an error and send the visitor back to the form; on success the
// user is logged in immediately and redirected home.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password1 := r.FormValue("password1")
	password2 := r.FormValue("password2")

	reject := func(key string) {
		flash.Error(w, r, i18n.T(lang, key))
		http.Redirect(w, r, "/"+lang+"/register/", http.StatusSeeOther)
	}

	if key := validateRegistration(username, email, password1, password2); key != "" {
		reject(key)
		return
	}

	taken, err := a.users.UsernameExists(username)
	if err != nil {
		slog.Error("username check failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if taken {
		reject("username_taken")
		return
	}

	user, err := a.users.Create(username, email, password1)
	if err != nil {
		slog.Error("create user failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flash.Success(w, r, i18n.T(lang, "account_created"))
	http.Redirect(w, r, "/"+lang+"/", http.StatusSeeOther)
}

// LoginPage renders the login form. An optional ?next= parameter is
// carried through the form for the post-login redirect.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/"+lang+"/", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: i18n.T(lang, "login_heading"),
		Data:  map[string]any{"Next": safeNext(r.URL.Query().Get("next"))},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := a.users.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user == nil || !a.users.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: i18n.T(lang, "login_heading"),
			Data: map[string]any{
				"Error": i18n.T(lang, "invalid_credentials"),
				"Next":  safeNext(r.FormValue("next")),
			},
		})
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flash.Success(w, r, i18n.T(lang, "welcome_back"))

	target := safeNext(r.FormValue("next"))
	if target == "" {
		target = "/" + lang + "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout destroys the session and redirects home.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())

	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}

	flash.Success(w, r, i18n.T(lang, "logged_out"))
	http.Redirect(w, r, "/"+lang+"/", http.StatusSeeOther)
}
