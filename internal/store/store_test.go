// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"habari/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching the dev database.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "habari")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "habari")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// makeCategory inserts a category and registers cleanup. Deleting the
// category cascades to its posts and their comments.
func makeCategory(t *testing.T, db *sql.DB, nameEN, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`INSERT INTO categories (name_en, name_sw, slug) VALUES ($1, $2, $3) RETURNING id`,
		nameEN, nameEN+" (sw)", slug,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}

	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", id) })
	return id
}

// makePost inserts a published post in the given category.
func makePost(t *testing.T, db *sql.DB, categoryID uuid.UUID, title, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`INSERT INTO posts (title_en, slug, body_en, category_id, is_published)
		 VALUES ($1, $2, $3, $4, TRUE) RETURNING id`,
		title, slug, "Body of "+title, categoryID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert post: %v", err)
	}
	return id
}

// makeUnpublishedPost inserts a draft post.
func makeUnpublishedPost(t *testing.T, db *sql.DB, categoryID uuid.UUID, title, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		`INSERT INTO posts (title_en, slug, body_en, category_id, is_published)
		 VALUES ($1, $2, $3, $4, FALSE) RETURNING id`,
		title, slug, "Draft body", categoryID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert draft post: %v", err)
	}
	return id
}

// cleanUsers removes test users by username. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		db.Exec("DELETE FROM users WHERE username = $1", u)
	}
}

// cleanSubscribers removes test subscribers by email. Call in t.Cleanup().
func cleanSubscribers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, e := range emails {
		db.Exec("DELETE FROM subscribers WHERE email = $1", e)
	}
}
