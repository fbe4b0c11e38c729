package middleware

import (
	"context"
	"net/http"

	"habari/internal/i18n"
)

// langKey is the context key for the active language code.
const langKey contextKey = "lang"

// Language stamps the request context with the active language code.
// The router mounts one localized route group per supported locale, so
// the code is fixed per group rather than parsed from the URL here.
func Language(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), langKey, code)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LangFromCtx returns the active language for the request, defaulting
// to the site default when the request bypassed the locale groups.
func LangFromCtx(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey).(string); ok {
		return lang
	}
	return i18n.Default
}
