// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n resolves the active language for a request, translates
// user-facing status messages, and rewrites URLs between locale
// prefixes. The site serves two locales: English and Swahili.
package i18n

import (
	"net/url"
	"strings"

	"habari/internal/models"
)

// Default is the locale used when none is present in the URL.
const Default = models.LangEnglish

// Supported lists the locale codes the site serves, in display order.
var Supported = []string{models.LangEnglish, models.LangSwahili}

// IsSupported reports whether code is one of the served locales.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}
	return false
}

// messages maps translation keys to per-language strings. English is the
// catalog's reference language; lookups fall back to it for any key
// missing a Swahili entry.
var messages = map[string]map[string]string{
	models.LangEnglish: {
		"comment_posted":       "Comment posted successfully!",
		"comment_empty":        "Comment cannot be empty",
		"login_required_reply": "Login required to reply",
		"guests_cannot_reply":  "Guests cannot reply",
		"name_email_required":  "Name and email required",
		"invalid_email":        "A valid email address is required",
		"account_created":      "Account created successfully",
		"passwords_mismatch":   "Passwords do not match",
		"username_taken":       "Username already exists",
		"welcome_back":         "Welcome back!",
		"invalid_credentials":  "Invalid credentials",
		"logged_out":           "Logged out",
		"session_stale":        "Your session is no longer valid, please log in again",
		"subscribed":           "Subscribed successfully",
		"already_subscribed":   "Already subscribed",
		"message_sent":         "Message sent",
		"username_invalid":     "A valid username is required",
		"password_too_short":   "Password must be at least 8 characters",

		"nav_home":               "Home",
		"nav_about":              "About",
		"nav_contact":            "Contact",
		"nav_login":              "Login",
		"nav_logout":             "Logout",
		"nav_register":           "Register",
		"sidebar_categories":     "Categories",
		"sidebar_popular":        "Popular Posts",
		"sidebar_subscribe":      "Subscribe",
		"subscribe_placeholder":  "Your email",
		"subscribe_button":       "Subscribe",
		"search_placeholder":     "Search posts...",
		"search_button":          "Search",
		"search_results_for":     "Search results for",
		"views_label":            "views",
		"read_more":              "Read more",
		"no_posts":               "No posts yet",
		"page_prev":              "Previous",
		"page_next":              "Next",
		"price_label":            "Price",
		"comments_heading":       "Comments",
		"no_comments":            "No comments yet. Be the first!",
		"comment_form_heading":   "Leave a comment",
		"comment_placeholder":    "Write your comment...",
		"comment_submit":         "Post Comment",
		"reply_button":           "Reply",
		"reply_placeholder":      "Write your reply...",
		"guest_name_placeholder": "Your name",
		"guest_email_placeholder": "Your email",
		"login_heading":          "Login",
		"login_button":           "Login",
		"login_prompt":           "Already have an account? Login",
		"register_heading":       "Register",
		"register_button":        "Register",
		"register_prompt":        "No account? Register",
		"username_label":         "Username",
		"email_label":            "Email",
		"password_label":         "Password",
		"password_confirm_label": "Confirm password",
		"about_heading":          "About",
		"about_body":             "Habari is a bilingual blog sharing courses, books, and free resources in English and Swahili.",
		"contact_heading":        "Contact Us",
		"name_label":             "Name",
		"message_label":          "Message",
		"contact_send":           "Send",
		"not_found_body":         "The page you are looking for does not exist.",
		"back_home":              "Back to home",
	},
	models.LangSwahili: {
		"comment_posted":       "Maoni yamechapishwa!",
		"comment_empty":        "Maoni hayawezi kuwa tupu",
		"login_required_reply": "Ingia kwenye akaunti ili kujibu",
		"guests_cannot_reply":  "Wageni hawawezi kujibu",
		"name_email_required":  "Jina na barua pepe vinahitajika",
		"invalid_email":        "Barua pepe sahihi inahitajika",
		"account_created":      "Akaunti imeundwa",
		"passwords_mismatch":   "Nywila hazilingani",
		"username_taken":       "Jina la mtumiaji tayari lipo",
		"welcome_back":         "Karibu tena!",
		"invalid_credentials":  "Taarifa za kuingia si sahihi",
		"logged_out":           "Umetoka kwenye akaunti",
		"session_stale":        "Kipindi chako hakifai tena, tafadhali ingia tena",
		"subscribed":           "Umejiandikisha",
		"already_subscribed":   "Tayari umejiandikisha",
		"message_sent":         "Ujumbe umetumwa",
		"username_invalid":     "Jina sahihi la mtumiaji linahitajika",
		"password_too_short":   "Nywila lazima iwe na angalau herufi 8",

		"nav_home":               "Nyumbani",
		"nav_about":              "Kuhusu",
		"nav_contact":            "Wasiliana",
		"nav_login":              "Ingia",
		"nav_logout":             "Toka",
		"nav_register":           "Jisajili",
		"sidebar_categories":     "Makundi",
		"sidebar_popular":        "Makala Maarufu",
		"sidebar_subscribe":      "Jiandikishe",
		"subscribe_placeholder":  "Barua pepe yako",
		"subscribe_button":       "Jiandikishe",
		"search_placeholder":     "Tafuta makala...",
		"search_button":          "Tafuta",
		"search_results_for":     "Matokeo ya utafutaji wa",
		"views_label":            "mara",
		"read_more":              "Soma zaidi",
		"no_posts":               "Hakuna makala bado",
		"page_prev":              "Iliyotangulia",
		"page_next":              "Inayofuata",
		"price_label":            "Bei",
		"comments_heading":       "Maoni",
		"no_comments":            "Hakuna maoni bado. Kuwa wa kwanza!",
		"comment_form_heading":   "Andika maoni",
		"comment_placeholder":    "Andika maoni yako...",
		"comment_submit":         "Tuma Maoni",
		"reply_button":           "Jibu",
		"reply_placeholder":      "Andika jibu lako...",
		"guest_name_placeholder": "Jina lako",
		"guest_email_placeholder": "Barua pepe yako",
		"login_heading":          "Ingia",
		"login_button":           "Ingia",
		"login_prompt":           "Una akaunti tayari? Ingia",
		"register_heading":       "Jisajili",
		"register_button":        "Jisajili",
		"register_prompt":        "Huna akaunti? Jisajili",
		"username_label":         "Jina la mtumiaji",
		"email_label":            "Barua pepe",
		"password_label":         "Nywila",
		"password_confirm_label": "Thibitisha nywila",
		"about_heading":          "Kuhusu",
		"about_body":             "Habari ni blogu ya lugha mbili inayoshiriki kozi, vitabu na rasilimali za bure kwa Kiingereza na Kiswahili.",
		"contact_heading":        "Wasiliana Nasi",
		"name_label":             "Jina",
		"message_label":          "Ujumbe",
		"contact_send":           "Tuma",
		"not_found_body":         "Ukurasa unaoutafuta haupo.",
		"back_home":              "Rudi nyumbani",
	},
}

// T returns the translation of key for lang. Unknown languages and keys
// fall back to the English catalog; a key absent there returns the key
// itself so missing translations surface visibly instead of blanking.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[models.LangEnglish][key]; ok {
		return s
	}
	return key
}

// ctaLabels maps call-to-action codes to per-language button labels.
var ctaLabels = map[models.CTAText]map[string]string{
	models.CTAEnroll:   {models.LangEnglish: "Enroll Now", models.LangSwahili: "Jiunge Sasa"},
	models.CTABuy:      {models.LangEnglish: "Buy Now", models.LangSwahili: "Nunua Sasa"},
	models.CTAPay:      {models.LangEnglish: "Pay Now", models.LangSwahili: "Lipa Sasa"},
	models.CTADownload: {models.LangEnglish: "Download", models.LangSwahili: "Pakua"},
	models.CTAVisit:    {models.LangEnglish: "Visit Link", models.LangSwahili: "Tembelea Kiungo"},
}

// CTALabel returns the localized button label for a call-to-action code.
// Returns "" for CTANone and unknown codes (no button rendered).
func CTALabel(lang string, cta models.CTAText) string {
	labels, ok := ctaLabels[cta]
	if !ok {
		return ""
	}
	if s, ok := labels[lang]; ok {
		return s
	}
	return labels[models.LangEnglish]
}

// TranslateURL rewrites the locale segment of a site-local path so the
// destination renders in lang. A path whose first segment is a supported
// locale has that segment replaced; any other path gains a locale
// prefix. Only the path and query of next are kept — scheme and host are
// discarded so the result can never redirect off-site.
func TranslateURL(next, lang string) string {
	if next == "" {
		return "/" + lang + "/"
	}

	u, err := url.Parse(next)
	if err != nil {
		return "/" + lang + "/"
	}

	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(segments) > 0 && IsSupported(segments[0]) {
		segments[0] = lang
	} else {
		segments = append([]string{lang}, segments...)
	}

	translated := "/" + strings.TrimPrefix(strings.Join(segments, "/"), "/")
	if u.RawQuery != "" {
		translated += "?" + u.RawQuery
	}
	return translated
}
