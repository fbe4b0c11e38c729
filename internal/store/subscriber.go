package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"habari/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations, used to make Subscribe idempotent under concurrent
// submissions of the same email.
const uniqueViolation = "23505"

// SubscriberStore handles newsletter subscriber capture.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a new SubscriberStore with the given database connection.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Subscribe records an email address. Returns created=false without
// error when the email is already subscribed — both when a row exists up
// front and when a concurrent request wins the unique-constraint race.
func (s *SubscriberStore) Subscribe(email string) (*models.Subscriber, bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM subscribers WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return nil, false, fmt.Errorf("subscriber exists: %w", err)
	}
	if exists {
		return nil, false, nil
	}

	sub := &models.Subscriber{}
	err = s.db.QueryRow(`
		INSERT INTO subscribers (email)
		VALUES ($1)
		RETURNING id, email, subscribed_at
	`, email).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("create subscriber: %w", err)
	}
	return sub, true, nil
}

// Count returns the total number of subscribers.
func (s *SubscriberStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
