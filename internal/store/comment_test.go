// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// commentFixture creates a category, a post, and a registered user for
// comment tests.
func commentFixture(t *testing.T, db *sql.DB, tag string) (postID, userID uuid.UUID) {
	t.Helper()

	catID := makeCategory(t, db, "Comment Cat "+tag, "comment-cat-"+tag)
	postID = makePost(t, db, catID, "Commented Post "+tag, "commented-post-"+tag)

	users := NewUserStore(db)
	user, err := users.Create("commenter-"+tag, "commenter-"+tag+"@test.local", "password123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { cleanUsers(t, db, "commenter-"+tag) })

	return postID, user.ID
}

func TestCreateForUser(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, userID := commentFixture(t, db, "user")

	c, err := store.CreateForUser(postID, userID, "nice post", nil)
	if err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}
	if c.UserID == nil || *c.UserID != userID {
		t.Error("comment not attached to user")
	}
	if c.ParentID != nil {
		t.Error("top-level comment must have nil parent")
	}
	if !c.Approved {
		t.Error("new comments are approved immediately")
	}
	if c.Likes != 0 {
		t.Errorf("new comment Likes = %d, want 0", c.Likes)
	}
}

func TestCreateForGuest(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, _ := commentFixture(t, db, "guest")

	c, err := store.CreateForGuest(postID, "Juma", "juma@test.local", "habari!")
	if err != nil {
		t.Fatalf("CreateForGuest: %v", err)
	}
	if c.UserID != nil {
		t.Error("guest comment must have nil UserID")
	}
	if c.GuestName == nil || *c.GuestName != "Juma" {
		t.Error("guest name not stored")
	}
	if c.DisplayName() != "Juma" {
		t.Errorf("DisplayName = %q", c.DisplayName())
	}
}

func TestListForPostThreading(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, userID := commentFixture(t, db, "thread")

	first, err := store.CreateForUser(postID, userID, "first comment", nil)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := store.CreateForGuest(postID, "Guest", "g@test.local", "second comment"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := store.CreateForUser(postID, userID, "a reply", &first.ID); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	comments, err := store.ListForPost(postID)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}

	// Replies never appear at the top level.
	if len(comments) != 2 {
		t.Fatalf("got %d top-level comments, want 2", len(comments))
	}

	foundFirst := false
	for _, c := range comments {
		if c.ID == first.ID {
			foundFirst = true
			if len(c.Replies) != 1 || c.Replies[0].Body != "a reply" {
				t.Errorf("reply not attached: %+v", c.Replies)
			}
			// Registered commenter shows the account username.
			if c.DisplayName() != "commenter-thread" {
				t.Errorf("DisplayName = %q", c.DisplayName())
			}
		}
	}
	if !foundFirst {
		t.Fatal("first comment missing from listing")
	}

	count, err := store.CountForPost(postID)
	if err != nil {
		t.Fatalf("CountForPost: %v", err)
	}
	if count != 3 {
		t.Errorf("CountForPost = %d, want 3 (replies included)", count)
	}
}

func TestListForPostHidesUnapproved(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, userID := commentFixture(t, db, "approve")

	c, err := store.CreateForUser(postID, userID, "to be hidden", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`UPDATE comments SET approved = FALSE WHERE id = $1`, c.ID); err != nil {
		t.Fatalf("unapprove: %v", err)
	}

	comments, err := store.ListForPost(postID)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("unapproved comment visible: %+v", comments)
	}

	count, _ := store.CountForPost(postID)
	if count != 0 {
		t.Errorf("CountForPost = %d, want 0", count)
	}
}

func TestFindOnPost(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, userID := commentFixture(t, db, "find")
	otherPostID, _ := commentFixture(t, db, "find-other")

	c, err := store.CreateForUser(postID, userID, "findable", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := store.FindOnPost(c.ID, postID)
	if err != nil {
		t.Fatalf("FindOnPost: %v", err)
	}
	if found == nil || found.ID != c.ID {
		t.Error("comment not found on its own post")
	}

	// The same id scoped to a different post does not resolve.
	cross, err := store.FindOnPost(c.ID, otherPostID)
	if err != nil {
		t.Fatalf("FindOnPost cross-post: %v", err)
	}
	if cross != nil {
		t.Error("comment must not resolve against another post")
	}
}

func TestIncrementLikes(t *testing.T) {
	db := testDB(t)
	store := NewCommentStore(db)
	postID, userID := commentFixture(t, db, "likes")

	c, err := store.CreateForUser(postID, userID, "likeable", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.IncrementLikes(c.ID); err != nil {
		t.Fatalf("IncrementLikes: %v", err)
	}
	if err := store.IncrementLikes(c.ID); err != nil {
		t.Fatalf("IncrementLikes: %v", err)
	}

	reloaded, err := store.FindOnPost(c.ID, postID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Likes != 2 {
		t.Errorf("Likes = %d, want 2", reloaded.Likes)
	}

	// Unknown ids are a silent no-op.
	if err := store.IncrementLikes(uuid.New()); err != nil {
		t.Errorf("IncrementLikes unknown id: %v", err)
	}
}
