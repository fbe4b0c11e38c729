package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validation limits for form fields.
const (
	maxCommentLen  = 5_000
	maxNameLen     = 100
	maxEmailLen    = 254
	maxUsernameLen = 150
	minPasswordLen = 8
	maxPasswordLen = 128
	maxMessageLen  = 10_000
)

// validate holds the shared validator instance used for tag-based checks.
var validate = validator.New()

// validEmail reports whether the address is well-formed.
func validEmail(email string) bool {
	if email == "" || utf8.RuneCountInString(email) > maxEmailLen {
		return false
	}
	return validate.Var(email, "email") == nil
}

// validateComment checks a comment body and returns the message key of
// the first error found, or "".
func validateComment(body string) string {
	if strings.TrimSpace(body) == "" {
		return "comment_empty"
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return "comment_empty"
	}
	return ""
}

// validateGuest checks guest identity fields for a guest comment.
func validateGuest(name, email string) string {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return "name_email_required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name_email_required"
	}
	if !validEmail(email) {
		return "invalid_email"
	}
	return ""
}

// validateRegistration checks the registration form and returns the
// message key of the first error found, or "".
func validateRegistration(username, email, password1, password2 string) string {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen {
		return "username_invalid"
	}
	if !validEmail(email) {
		return "invalid_email"
	}
	if password1 != password2 {
		return "passwords_mismatch"
	}
	n := utf8.RuneCountInString(password1)
	if n < minPasswordLen || n > maxPasswordLen {
		return "password_too_short"
	}
	return ""
}
