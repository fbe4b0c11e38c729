// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType categorizes what a post is selling or offering.
type PostType string

const (
	PostTypeCourse   PostType = "course"
	PostTypeBook     PostType = "book"
	PostTypeProduct  PostType = "product"
	PostTypeService  PostType = "service"
	PostTypeFree     PostType = "free"
	PostTypeExternal PostType = "external"
)

// CTAText selects the call-to-action button shown on a post's detail page.
type CTAText string

const (
	CTAEnroll   CTAText = "enroll"
	CTABuy      CTAText = "buy"
	CTAPay      CTAText = "pay"
	CTADownload CTAText = "download"
	CTAVisit    CTAText = "visit"
	CTANone     CTAText = "none"
)

// Post is a blog article with bilingual title/body/meta fields and
// optional monetization fields (CTA, price, instructions).
type Post struct {
	ID                uuid.UUID  `json:"id"`
	TitleEN           string     `json:"title_en"`
	TitleSW           *string    `json:"title_sw,omitempty"`
	Slug              string     `json:"slug"`
	BodyEN            string     `json:"body_en"`
	BodySW            *string    `json:"body_sw,omitempty"`
	MetaDescriptionEN *string    `json:"meta_description_en,omitempty"`
	MetaDescriptionSW *string    `json:"meta_description_sw,omitempty"`
	FeaturedImage     *string    `json:"featured_image,omitempty"`
	CategoryID        uuid.UUID  `json:"category_id"`
	AuthorID          *uuid.UUID `json:"author_id,omitempty"`
	Views             int        `json:"views"`
	IsPublished       bool       `json:"is_published"`
	IsFeatured        bool       `json:"is_featured"`
	PostType          PostType   `json:"post_type"`
	CTAText           CTAText    `json:"cta_text"`
	CTALink           *string    `json:"cta_link,omitempty"`
	Price             *float64   `json:"price,omitempty"`
	Instructions      *string    `json:"instructions,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Virtual fields populated by store joins.
	Category       *Category `json:"category,omitempty"`
	AuthorUsername *string   `json:"author_username,omitempty"`
	Tags           []Tag     `json:"tags,omitempty"`
}

// Title returns the post title in the given language, falling back to
// English when the Swahili variant is empty.
func (p Post) Title(lang string) string {
	if lang == LangSwahili && p.TitleSW != nil && *p.TitleSW != "" {
		return *p.TitleSW
	}
	return p.TitleEN
}

// Body returns the post body in the given language with English fallback.
func (p Post) Body(lang string) string {
	if lang == LangSwahili && p.BodySW != nil && *p.BodySW != "" {
		return *p.BodySW
	}
	return p.BodyEN
}

// MetaDescription returns the meta description in the given language
// with English fallback. Empty if neither variant is set.
func (p Post) MetaDescription(lang string) string {
	if lang == LangSwahili && p.MetaDescriptionSW != nil && *p.MetaDescriptionSW != "" {
		return *p.MetaDescriptionSW
	}
	if p.MetaDescriptionEN != nil {
		return *p.MetaDescriptionEN
	}
	return ""
}

// HasCTA reports whether the post should render a call-to-action button.
func (p Post) HasCTA() bool {
	return p.CTAText != "" && p.CTAText != CTANone
}
