// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a post. It is owned either by a
// registered user (UserID set) or by a guest (GuestName + GuestEmail
// set). Replies reference their parent comment; reply depth is capped
// at one level by the comment service, not the schema.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	GuestName  *string    `json:"guest_name,omitempty"`
	GuestEmail *string    `json:"guest_email,omitempty"`
	Body       string     `json:"body"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Likes      int        `json:"likes"`
	Approved   bool       `json:"approved"`
	CreatedAt  time.Time  `json:"created_at"`

	// Virtual fields populated by store joins.
	Username *string   `json:"username,omitempty"`
	Replies  []Comment `json:"replies,omitempty"`
}

// IsReply reports whether this comment is a reply to another comment.
func (c Comment) IsReply() bool {
	return c.ParentID != nil
}

// DisplayName returns the commenter's visible name: the account username
// for registered users, the supplied name for guests.
func (c Comment) DisplayName() string {
	if c.Username != nil && *c.Username != "" {
		return *c.Username
	}
	if c.GuestName != nil {
		return *c.GuestName
	}
	return "Anonymous"
}
