// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"habari/internal/models"
)

// PostStore handles all post-related database operations. Read paths
// join the category and author so listing templates need no extra
// queries.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns is the column list shared by every post query: all post
// fields plus the joined category and the author's username.
const postColumns = `
	p.id, p.title_en, p.title_sw, p.slug, p.body_en, p.body_sw,
	p.meta_description_en, p.meta_description_sw, p.featured_image,
	p.category_id, p.author_id, p.views, p.is_published, p.is_featured,
	p.post_type, p.cta_text, p.cta_link, p.price, p.instructions,
	p.created_at, p.updated_at,
	c.id, c.name_en, c.name_sw, c.slug, c.created_at, c.updated_at,
	u.username`

// postJoins pairs with postColumns. The author join is LEFT because
// author_id is nulled when the account is deleted; the post survives.
const postJoins = `
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = p.author_id`

// scanPost scans one joined post row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var c models.Category
	err := scanner.Scan(
		&p.ID, &p.TitleEN, &p.TitleSW, &p.Slug, &p.BodyEN, &p.BodySW,
		&p.MetaDescriptionEN, &p.MetaDescriptionSW, &p.FeaturedImage,
		&p.CategoryID, &p.AuthorID, &p.Views, &p.IsPublished, &p.IsFeatured,
		&p.PostType, &p.CTAText, &p.CTALink, &p.Price, &p.Instructions,
		&p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.NameEN, &c.NameSW, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
		&p.AuthorUsername,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

// queryPosts runs a joined post query and scans all rows.
func (s *PostStore) queryPosts(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// listPage counts matching published posts, clamps the requested page
// number, and fetches that page newest-first. where must reference the
// aliased posts table as p and already include the is_published filter.
func (s *PostStore) listPage(page int, where string, args ...any) (*PostPage, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM posts p WHERE ` + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	number, totalPages := clampPage(page, total)

	query := `SELECT` + postColumns + postJoins + `
		WHERE ` + where + `
		ORDER BY p.created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, PageSize, (number-1)*PageSize)

	posts, err := s.queryPosts(query, args...)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Number:     number,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// ListPublished returns one page of published posts, newest first.
// Out-of-range page numbers clamp to the nearest valid page.
func (s *PostStore) ListPublished(page int) (*PostPage, error) {
	return s.listPage(page, `p.is_published`)
}

// ListPublishedByCategory returns one page of a category's published
// posts, paginated identically to the home listing.
func (s *PostStore) ListPublishedByCategory(categoryID uuid.UUID, page int) (*PostPage, error) {
	return s.listPage(page, `p.is_published AND p.category_id = $1`, categoryID)
}

// likeEscaper neutralizes LIKE wildcards in user-supplied search text so
// the query is always a literal substring match.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPublished returns one page of published posts whose title or
// body contains query (case-insensitive) in either language variant.
// An empty query returns all published posts unfiltered.
func (s *PostStore) SearchPublished(query string, page int) (*PostPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListPublished(page)
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"
	return s.listPage(page, `p.is_published AND (
		p.title_en ILIKE $1 OR p.title_sw ILIKE $1 OR
		p.body_en ILIKE $1 OR p.body_sw ILIKE $1)`, pattern)
}

// FindPublishedBySlug retrieves a published post by its slug, with its
// tags loaded. Returns nil if absent or unpublished.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT`+postColumns+postJoins+`
		WHERE p.slug = $1 AND p.is_published`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}

	tags, err := s.tagsFor(p.ID)
	if err != nil {
		return nil, err
	}
	p.Tags = tags
	return p, nil
}

// IncrementViews bumps the view counter by exactly 1 as a single atomic
// UPDATE, so concurrent visits never lose counts. Only the counter is
// written — updated_at is untouched.
func (s *PostStore) IncrementViews(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// MostViewed returns the most-viewed published posts for the sidebar.
func (s *PostStore) MostViewed(limit int) ([]models.Post, error) {
	return s.queryPosts(`SELECT`+postColumns+postJoins+`
		WHERE p.is_published
		ORDER BY p.views DESC, p.created_at DESC
		LIMIT $1`, limit)
}

// tagsFor loads the tags attached to a post, alphabetically.
func (s *PostStore) tagsFor(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("tags for post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
