package handlers

import (
	"net/http"

	"habari/internal/i18n"
)

// SetLanguage switches the visitor's locale. The form carries the
// target language and the current path; the response redirects to the
// same page with the locale prefix rewritten. An unsupported code just
// goes back to the root.
func SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("language")
	next := r.FormValue("next")

	if !i18n.IsSupported(lang) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, i18n.TranslateURL(next, lang), http.StatusSeeOther)
}
