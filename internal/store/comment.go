// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"habari/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// commentColumns is the column list shared by comment queries, joined
// with the owning user's username for display.
const commentColumns = `
	cm.id, cm.post_id, cm.user_id, cm.guest_name, cm.guest_email,
	cm.body, cm.parent_id, cm.likes, cm.approved, cm.created_at,
	u.username`

// scanComment scans one joined comment row.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.GuestName, &c.GuestEmail,
		&c.Body, &c.ParentID, &c.Likes, &c.Approved, &c.CreatedAt,
		&c.Username,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOnPost retrieves a comment by ID, but only if it belongs to the
// given post. Used to resolve reply parents: a parent ID pointing at
// another post's comment does not resolve. Returns nil if not found.
func (s *CommentStore) FindOnPost(id, postID uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`
		SELECT`+commentColumns+`
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.id = $1 AND cm.post_id = $2
	`, id, postID)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment on post: %w", err)
	}
	return c, nil
}

// CreateForUser inserts a comment owned by a registered user. parentID
// is nil for top-level comments. New comments are approved immediately.
func (s *CommentStore) CreateForUser(postID, userID uuid.UUID, body string, parentID *uuid.UUID) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, user_id, body, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, user_id, guest_name, guest_email,
		          body, parent_id, likes, approved, created_at
	`, postID, userID, body, parentID).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.GuestName, &c.GuestEmail,
		&c.Body, &c.ParentID, &c.Likes, &c.Approved, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user comment: %w", err)
	}
	return c, nil
}

// CreateForGuest inserts a top-level comment owned by a guest. Guests
// can never set a parent — the comment service rejects guest replies
// before reaching the store.
func (s *CommentStore) CreateForGuest(postID uuid.UUID, name, email, body string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, guest_name, guest_email, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, user_id, guest_name, guest_email,
		          body, parent_id, likes, approved, created_at
	`, postID, name, email, body).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.GuestName, &c.GuestEmail,
		&c.Body, &c.ParentID, &c.Likes, &c.Approved, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create guest comment: %w", err)
	}
	return c, nil
}

// ListForPost returns a post's approved top-level comments newest-first,
// each with its approved replies attached oldest-first. Replies are
// fetched in a single second query and grouped by parent, never
// flattened into the top-level list.
func (s *CommentStore) ListForPost(postID uuid.UUID) ([]models.Comment, error) {
	parents, err := s.queryComments(`
		SELECT`+commentColumns+`
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1 AND cm.parent_id IS NULL AND cm.approved
		ORDER BY cm.created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return parents, nil
	}

	replies, err := s.queryComments(`
		SELECT`+commentColumns+`
		FROM comments cm
		LEFT JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1 AND cm.parent_id IS NOT NULL AND cm.approved
		ORDER BY cm.created_at ASC
	`, postID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[uuid.UUID][]models.Comment, len(replies))
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	for i := range parents {
		parents[i].Replies = byParent[parents[i].ID]
	}
	return parents, nil
}

// IncrementLikes bumps a comment's like counter by exactly 1 as a single
// atomic UPDATE. An unknown ID matches no rows and is a silent no-op.
func (s *CommentStore) IncrementLikes(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE comments SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment likes: %w", err)
	}
	return nil
}

// CountForPost returns the number of approved comments on a post,
// replies included.
func (s *CommentStore) CountForPost(postID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM comments WHERE post_id = $1 AND approved
	`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}

// queryComments runs a joined comment query and scans all rows.
func (s *CommentStore) queryComments(query string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}
