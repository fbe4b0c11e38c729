// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts and carries a bilingual name. The slug is the
// stable identifier used in URLs and must never change once published.
type Category struct {
	ID        uuid.UUID `json:"id"`
	NameEN    string    `json:"name_en"`
	NameSW    *string   `json:"name_sw,omitempty"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Name returns the category name in the given language, falling back to
// English when the Swahili variant is empty.
func (c Category) Name(lang string) string {
	if lang == LangSwahili && c.NameSW != nil && *c.NameSW != "" {
		return *c.NameSW
	}
	return c.NameEN
}
