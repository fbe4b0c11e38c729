// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"habari/internal/flash"
	"habari/internal/i18n"
	"habari/internal/middleware"
	"habari/internal/store"
)

// Comments groups the comment submission and like handlers.
type Comments struct {
	posts    *store.PostStore
	comments *store.CommentStore
	users    *store.UserStore
}

// NewComments creates a new Comments handler group.
func NewComments(posts *store.PostStore, comments *store.CommentStore, users *store.UserStore) *Comments {
	return &Comments{posts: posts, comments: comments, users: users}
}

// Submit processes a comment form post. Logged-in users may comment and
// reply; guests may only leave top-level comments and must supply a name
// and email. Every outcome redirects back to the post page with a flash.
func (c *Comments) Submit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	slug := chi.URLParam(r, "slug")
	postURL := "/" + lang + "/post/" + slug + "/"

	post, err := c.posts.FindPublishedBySlug(slug)
	if err != nil {
		slog.Error("find post for comment failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	body := strings.TrimSpace(r.FormValue("body"))
	if key := validateComment(body); key != "" {
		flash.Error(w, r, i18n.T(lang, key))
		http.Redirect(w, r, postURL, http.StatusSeeOther)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	// Resolve the parent first. A parent_id that does not name a comment
	// on this post is ignored and the submission stays top-level.
	var parentID *uuid.UUID
	if field := r.FormValue("parent_id"); field != "" {
		if id, err := uuid.Parse(field); err == nil {
			parent, err := c.comments.FindOnPost(id, post.ID)
			if err != nil {
				slog.Error("find parent comment failed", "parent", id, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if parent != nil {
				// Replies never nest deeper than one level; replying to
				// a reply attaches to its top-level parent.
				if parent.ParentID != nil {
					parentID = parent.ParentID
				} else {
					parentID = &parent.ID
				}
			}
		}
	}

	// Replying is a registered-user feature. A guest answering a real
	// comment is sent to login, never silently demoted to top-level.
	if parentID != nil && sess == nil {
		flash.Error(w, r, i18n.T(lang, "login_required_reply"))
		http.Redirect(w, r, postURL, http.StatusSeeOther)
		return
	}

	if sess != nil {
		// A session can outlive its account. Attributing the comment to
		// a deleted user would fail the foreign key, so confirm the
		// account first.
		user, err := c.users.FindByID(sess.UserID)
		if err != nil {
			slog.Error("find comment author failed", "user", sess.UserID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			flash.Error(w, r, i18n.T(lang, "session_stale"))
			http.Redirect(w, r, "/"+lang+"/login/", http.StatusSeeOther)
			return
		}

		if _, err := c.comments.CreateForUser(post.ID, sess.UserID, body, parentID); err != nil {
			slog.Error("create comment failed", "post", post.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	} else {
		name := strings.TrimSpace(r.FormValue("guest_name"))
		email := strings.TrimSpace(r.FormValue("guest_email"))
		if key := validateGuest(name, email); key != "" {
			flash.Error(w, r, i18n.T(lang, key))
			http.Redirect(w, r, postURL, http.StatusSeeOther)
			return
		}

		if _, err := c.comments.CreateForGuest(post.ID, name, email, body); err != nil {
			slog.Error("create guest comment failed", "post", post.ID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	flash.Success(w, r, i18n.T(lang, "comment_posted"))
	http.Redirect(w, r, postURL+"#comments", http.StatusSeeOther)
}

// Like increments a comment's like counter and redirects back to the
// post. Anyone may like a comment; unknown ids are a silent no-op.
func (c *Comments) Like(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	slug := chi.URLParam(r, "slug")

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := c.comments.IncrementLikes(id); err != nil {
		slog.Error("increment likes failed", "comment", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/"+lang+"/post/"+slug+"/#comment-"+id.String(), http.StatusSeeOther)
}
