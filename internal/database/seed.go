package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"habari/internal/slug"
)

// seedCategories are the bilingual starter categories created on an
// empty development database.
var seedCategories = []struct {
	NameEN string
	NameSW string
}{
	{"Courses", "Kozi"},
	{"Books", "Vitabu"},
	{"Free Resources", "Rasilimali za Bure"},
}

// Seed populates an empty development database with a default author
// account, starter categories, and one sample post per category so the
// site renders something on first boot. No-op if any users exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "admin", "admin@habari.local", string(hash)).Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, c := range seedCategories {
		var categoryID string
		err := db.QueryRow(`
			INSERT INTO categories (name_en, name_sw, slug)
			VALUES ($1, $2, $3)
			RETURNING id
		`, c.NameEN, c.NameSW, slug.Generate(c.NameEN)).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.NameEN, err)
		}

		title := "Welcome to " + c.NameEN
		_, err = db.Exec(`
			INSERT INTO posts (title_en, title_sw, slug, body_en, body_sw,
			                   category_id, author_id, post_type, cta_text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'free', 'none')
		`, title, "Karibu "+c.NameSW, slug.Generate(title),
			"This is a sample post. Replace it with real content.",
			"Hii ni makala ya mfano. Ibadilishe na maudhui halisi.",
			categoryID, authorID)
		if err != nil {
			return fmt.Errorf("seed insert post for %q: %w", c.NameEN, err)
		}
	}

	slog.Info("database seeded with default author and starter content",
		"username", "admin",
		"password", "admin",
	)

	return nil
}
