// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"

	"habari/internal/cache"
	"habari/internal/models"
	"habari/internal/store"
)

// popularLimit caps the number of posts in the popular-posts block.
const popularLimit = 5

// SidebarLoader assembles the sidebar shown on every content page:
// category summaries and the most-viewed posts. Results are cached in
// Redis for a short TTL since the sidebar changes rarely but renders on
// every request.
type SidebarLoader struct {
	categories *store.CategoryStore
	posts      *store.PostStore
	cache      *cache.SidebarCache
}

// NewSidebarLoader creates a SidebarLoader. cache may be nil, in which
// case every load hits the database.
func NewSidebarLoader(categories *store.CategoryStore, posts *store.PostStore, c *cache.SidebarCache) *SidebarLoader {
	return &SidebarLoader{categories: categories, posts: posts, cache: c}
}

// Load returns the sidebar, from cache when fresh. A database failure
// is logged and yields an empty sidebar rather than failing the page.
func (l *SidebarLoader) Load(ctx context.Context) *models.Sidebar {
	if l.cache != nil {
		if sb, ok := l.cache.Get(ctx); ok {
			return sb
		}
	}

	sb := &models.Sidebar{}
	complete := true

	summaries, err := l.categories.Summaries()
	if err != nil {
		slog.Error("sidebar category summaries failed", "error", err)
		complete = false
	} else {
		sb.Categories = summaries
	}

	popular, err := l.posts.MostViewed(popularLimit)
	if err != nil {
		slog.Error("sidebar popular posts failed", "error", err)
		complete = false
	} else {
		sb.Popular = popular
	}

	// Partial results are served but never cached.
	if l.cache != nil && complete {
		l.cache.Set(ctx, sb)
	}
	return sb
}
