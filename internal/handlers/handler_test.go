// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Redis are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"habari/internal/cache"
	"habari/internal/database"
	"habari/internal/flash"
	"habari/internal/middleware"
	"habari/internal/render"
	"habari/internal/session"
	"habari/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "habari")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "habari")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedisClient returns a Redis client for handler tests on DB 15.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "sidebar"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Redis         *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	Posts         *store.PostStore
	Categories    *store.CategoryStore
	CommentStore  *store.CommentStore
	Users         *store.UserStore
	Subscribers   *store.SubscriberStore
	Public        *Public
	Comments      *Comments
	Auth          *Auth
	Subscriptions *Subscriptions
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	rdb := testRedisClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(rdb, false)
	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	comments := store.NewCommentStore(db)
	users := store.NewUserStore(db)
	subscribers := store.NewSubscriberStore(db)

	sidebarCache := cache.NewSidebarCache(rdb, time.Minute)
	sidebar := NewSidebarLoader(categories, posts, sidebarCache)

	return &testEnv{
		DB:            db,
		Redis:         rdb,
		Renderer:      renderer,
		Sessions:      sessions,
		Posts:         posts,
		Categories:    categories,
		CommentStore:  comments,
		Users:         users,
		Subscribers:   subscribers,
		Public:        NewPublic(renderer, posts, categories, comments, sidebar),
		Comments:      NewComments(posts, comments, users),
		Auth:          NewAuth(renderer, sessions, users),
		Subscriptions: NewSubscriptions(subscribers),
	}
}

// serve runs a handler through the language middleware the router
// normally applies, so LangFromCtx resolves inside the handler.
func serve(lang string, h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	middleware.Language(lang)(h).ServeHTTP(rr, r)
	return rr
}

// getRequest builds a GET request carrying a CSRF cookie like a real
// browser session would.
func getRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "test-csrf-token"})
	return r
}

// formRequest builds a POST request with url-encoded form values.
func formRequest(target string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "test-csrf-token"})
	return r
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// withSession attaches session data to a request the way LoadSession does.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(middleware.CtxWithSession(r.Context(), data))
}

// popFlashes reads the flash messages a handler queued on its response.
func popFlashes(w *httptest.ResponseRecorder) []flash.Message {
	next := httptest.NewRequest(http.MethodGet, "/en/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == flash.CookieName {
			next.AddCookie(c)
		}
	}
	return flash.Pop(httptest.NewRecorder(), next)
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

// makeUser registers a user through the store and cleans it up after.
func makeUser(t *testing.T, env *testEnv, username string) *session.Data {
	t.Helper()

	user, err := env.Users.Create(username, username+"@test.local", "sw4hili-pass")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", user.ID) })

	return &session.Data{UserID: user.ID, Username: user.Username, Email: user.Email}
}
