// Package flash implements one-time status messages carried in a
// cookie across the redirect-after-post cycle. Handlers push a message
// before redirecting; the renderer pops all pending messages on the next
// page load and the cookie is cleared. A cookie (not the session) is
// used so guests — who have no session — still see their messages.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName is the cookie that carries pending flash messages.
const CookieName = "hb_flash"

// Message priorities, mirrored in the template styling.
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// Message is a single one-time notification.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Set appends a message to the pending flash cookie. Messages still
// pending from the incoming request are preserved.
func Set(w http.ResponseWriter, r *http.Request, typ, text string) {
	pending := peek(r)
	pending = append(pending, Message{Type: typ, Text: text})

	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // A message not rendered within 5 minutes is stale.
	})
}

// Success queues a success message.
func Success(w http.ResponseWriter, r *http.Request, text string) {
	Set(w, r, TypeSuccess, text)
}

// Error queues an error message.
func Error(w http.ResponseWriter, r *http.Request, text string) {
	Set(w, r, TypeError, text)
}

// Warning queues a warning message.
func Warning(w http.ResponseWriter, r *http.Request, text string) {
	Set(w, r, TypeWarning, text)
}

// Pop returns all pending messages and clears the flash cookie.
// Returns nil when nothing is pending.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	messages := peek(r)
	if messages == nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return messages
}

// peek decodes the pending messages without clearing them. A missing or
// malformed cookie yields nil.
func peek(r *http.Request) []Message {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []Message
	if err := json.Unmarshal(payload, &messages); err != nil {
		return nil
	}
	return messages
}
