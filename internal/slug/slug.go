// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns post and category titles into URL path segments.
package slug

import (
	"regexp"
	"strings"
)

var (
	// invalidChars strips everything except letters, digits, and the
	// characters that become hyphens below.
	invalidChars = regexp.MustCompile(`[^a-z0-9 _-]`)
	// separators collapses any run of spaces, underscores, or hyphens
	// into a single hyphen.
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Habari za Leo! 2026" becomes "habari-za-leo-2026".
func Generate(s string) string {
	s = strings.ToLower(s)
	s = invalidChars.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
