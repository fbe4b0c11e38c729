package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"habari/internal/flash"
	"habari/internal/i18n"
	"habari/internal/middleware"
	"habari/internal/store"
)

// Subscriptions handles the email subscription form in the sidebar.
type Subscriptions struct {
	subscribers *store.SubscriberStore
}

// NewSubscriptions creates a new Subscriptions handler group.
func NewSubscriptions(subscribers *store.SubscriberStore) *Subscriptions {
	return &Subscriptions{subscribers: subscribers}
}

// Submit records a subscription and redirects back to the page the form
// was submitted from. Subscribing twice with the same address is not an
// error, the visitor is told they are already on the list.
func (s *Subscriptions) Submit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())

	// The referrer may be a full URL; only its path survives, so the
	// redirect can never leave the site.
	back := i18n.TranslateURL(r.Referer(), lang)

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	if !validEmail(email) {
		flash.Error(w, r, i18n.T(lang, "invalid_email"))
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	_, created, err := s.subscribers.Subscribe(email)
	if err != nil {
		slog.Error("subscribe failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if created {
		flash.Success(w, r, i18n.T(lang, "subscribed"))
	} else {
		flash.Warning(w, r, i18n.T(lang, "already_subscribed"))
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
