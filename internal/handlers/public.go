// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public site:
// post listings, post detail with comments, category pages, search,
// authentication, subscription, and the language switcher.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"habari/internal/flash"
	"habari/internal/i18n"
	"habari/internal/markdown"
	"habari/internal/middleware"
	"habari/internal/render"
	"habari/internal/store"
)

// Public groups the read-side handlers for the blog.
type Public struct {
	renderer   *render.Renderer
	posts      *store.PostStore
	categories *store.CategoryStore
	comments   *store.CommentStore
	sidebar    *SidebarLoader
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, posts *store.PostStore, categories *store.CategoryStore, comments *store.CommentStore, sidebar *SidebarLoader) *Public {
	return &Public{
		renderer:   renderer,
		posts:      posts,
		categories: categories,
		comments:   comments,
		sidebar:    sidebar,
	}
}

// pageParam parses the ?page= query parameter. Anything non-numeric or
// below 1 becomes page 1; out-of-range values are clamped by the store.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Home renders the paginated list of published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	page, err := p.posts.ListPublished(pageParam(r))
	if err != nil {
		slog.Error("list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title:   "Habari",
		Sidebar: p.sidebar.Load(r.Context()),
		Data:    map[string]any{"Page": page},
	})
}

// PostDetail renders a single published post with its comment thread.
// Each render counts as one view.
func (p *Public) PostDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := p.posts.FindPublishedBySlug(slug)
	if err != nil {
		slog.Error("find post failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		p.renderer.NotFound(w, r)
		return
	}

	if err := p.posts.IncrementViews(post.ID); err != nil {
		slog.Error("increment views failed", "post", post.ID, "error", err)
	} else {
		post.Views++
	}

	comments, err := p.comments.ListForPost(post.ID)
	if err != nil {
		slog.Error("list comments failed", "post", post.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	count, err := p.comments.CountForPost(post.ID)
	if err != nil {
		slog.Error("count comments failed", "post", post.ID, "error", err)
	}

	lang := middleware.LangFromCtx(r.Context())

	bodyHTML, err := markdown.ToHTML(post.Body(lang))
	if err != nil {
		slog.Error("render post body failed", "post", post.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.renderer.Page(w, r, "post_detail", &render.PageData{
		Title:   post.Title(lang),
		Sidebar: p.sidebar.Load(r.Context()),
		Data: map[string]any{
			"Post":         post,
			"BodyHTML":     bodyHTML,
			"Comments":     comments,
			"CommentCount": count,
		},
	})
}

// CategoryPosts renders the paginated post list for one category.
func (p *Public) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := p.categories.FindBySlug(slug)
	if err != nil {
		slog.Error("find category failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		p.renderer.NotFound(w, r)
		return
	}

	page, err := p.posts.ListPublishedByCategory(category.ID, pageParam(r))
	if err != nil {
		slog.Error("list category posts failed", "category", category.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	lang := middleware.LangFromCtx(r.Context())

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title:   category.Name(lang),
		Sidebar: p.sidebar.Load(r.Context()),
		Data: map[string]any{
			"Page":    page,
			"Heading": category.Name(lang),
		},
	})
}

// Search renders posts matching the ?q= query. An empty query lists
// everything, same as the home page.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	page, err := p.posts.SearchPublished(query, pageParam(r))
	if err != nil {
		slog.Error("search posts failed", "query", query, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	lang := middleware.LangFromCtx(r.Context())

	data := map[string]any{"Page": page}
	title := "Habari"
	if query != "" {
		data["Query"] = query
		data["Heading"] = i18n.T(lang, "search_results_for") + " “" + query + "”"
		title = query
	}

	p.renderer.Page(w, r, "post_list", &render.PageData{
		Title:   title,
		Sidebar: p.sidebar.Load(r.Context()),
		Data:    data,
	})
}

// About renders the static about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	p.renderer.Page(w, r, "about", &render.PageData{
		Title:   i18n.T(lang, "about_heading"),
		Sidebar: p.sidebar.Load(r.Context()),
	})
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())
	p.renderer.Page(w, r, "contact", &render.PageData{
		Title:   i18n.T(lang, "contact_heading"),
		Sidebar: p.sidebar.Load(r.Context()),
	})
}

// ContactSubmit accepts the contact form. The message is logged for
// operators to follow up on; there is no outbound mail pipeline.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromCtx(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))

	if !validEmail(email) {
		flash.Error(w, r, i18n.T(lang, "invalid_email"))
		http.Redirect(w, r, "/"+lang+"/contact/", http.StatusSeeOther)
		return
	}
	if name == "" || message == "" || len(message) > maxMessageLen {
		flash.Error(w, r, i18n.T(lang, "name_email_required"))
		http.Redirect(w, r, "/"+lang+"/contact/", http.StatusSeeOther)
		return
	}

	slog.Info("contact message received", "name", name, "email", email, "length", len(message))

	flash.Success(w, r, i18n.T(lang, "message_sent"))
	http.Redirect(w, r, "/"+lang+"/contact/", http.StatusSeeOther)
}

// NotFound is the router's fallback handler.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.NotFound(w, r)
}
