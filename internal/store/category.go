// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"habari/internal/models"
)

// CategoryStore manages categories in the database. Categories are
// created administratively; the application only reads them.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name_en, name_sw, slug, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.NameEN, &c.NameSW, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// List returns all categories ordered by English name.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY name_en`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Summaries computes the sidebar aggregation: every category with at
// least one published post, its published-post count, and its oldest
// published post as the representative link. Categories with no
// published posts are omitted entirely.
func (s *CategoryStore) Summaries() ([]models.CategorySummary, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name_en, c.name_sw, c.slug, c.created_at, c.updated_at,
		       cnt.n,
		       o.id, o.title_en, o.title_sw, o.slug, o.created_at
		FROM categories c
		JOIN LATERAL (
			SELECT COUNT(*) AS n FROM posts
			WHERE category_id = c.id AND is_published
		) cnt ON cnt.n > 0
		JOIN LATERAL (
			SELECT id, title_en, title_sw, slug, created_at FROM posts
			WHERE category_id = c.id AND is_published
			ORDER BY created_at ASC
			LIMIT 1
		) o ON TRUE
		ORDER BY c.name_en
	`)
	if err != nil {
		return nil, fmt.Errorf("category summaries: %w", err)
	}
	defer rows.Close()

	var items []models.CategorySummary
	for rows.Next() {
		var cs models.CategorySummary
		err := rows.Scan(
			&cs.Category.ID, &cs.Category.NameEN, &cs.Category.NameSW,
			&cs.Category.Slug, &cs.Category.CreatedAt, &cs.Category.UpdatedAt,
			&cs.PostCount,
			&cs.OldestPost.ID, &cs.OldestPost.TitleEN, &cs.OldestPost.TitleSW,
			&cs.OldestPost.Slug, &cs.OldestPost.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}
