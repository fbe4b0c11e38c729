package models

// Language codes for the two locales every bilingual field carries.
// The English variant is always present; Swahili variants are optional
// and fall back to English when empty.
const (
	LangEnglish = "en"
	LangSwahili = "sw"
)
