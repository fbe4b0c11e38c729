// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"habari/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// sessionKey is the context key for the session data.
	sessionKey contextKey = "session"
)

// LoadSession retrieves the session from Redis and stores it in the
// request context. Downstream handlers access it via SessionFromCtx().
// This middleware does NOT enforce authentication — every page is
// public; handlers only branch on whether a session is present.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				// Log-free degradation: treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), sessionKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded (the requester is a guest).
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(sessionKey).(*session.Data)
	return data
}

// CtxWithSession returns a context carrying the given session data.
// Exported for handler tests that bypass the middleware chain.
func CtxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, sessionKey, data)
}
