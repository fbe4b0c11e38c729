// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"habari/internal/flash"
)

func TestHomeListsPublishedPosts(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Travel Pages", "travel-pages")
	makePost(t, env.DB, catID, "Zanzibar Ferry Notes", "zanzibar-ferry-notes")

	rr := serve("en", env.Public.Home, getRequest("/en/"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Zanzibar Ferry Notes") {
		t.Error("post title missing from home page")
	}
	if !strings.Contains(body, "/en/post/zanzibar-ferry-notes/") {
		t.Error("post link missing from home page")
	}
}

func TestHomeIgnoresBadPageParam(t *testing.T) {
	env := newTestEnv(t)

	rr := serve("en", env.Public.Home, getRequest("/en/?page=banana"))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestPostDetailRendersAndCountsView(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Detail Pages", "detail-pages")
	postID := makePost(t, env.DB, catID, "Counting Views", "counting-views")

	r := withChiURLParam(getRequest("/en/post/counting-views/"), "slug", "counting-views")
	rr := serve("en", env.Public.PostDetail, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Counting Views") {
		t.Error("post title missing")
	}
	// Markdown body rendered to HTML.
	if !strings.Contains(body, "<p>Body of Counting Views</p>") {
		t.Error("rendered markdown body missing")
	}
	if !strings.Contains(body, `id="comments"`) {
		t.Error("comments section missing")
	}

	var views int
	if err := env.DB.QueryRow("SELECT views FROM posts WHERE id = $1", postID).Scan(&views); err != nil {
		t.Fatalf("read views: %v", err)
	}
	if views != 1 {
		t.Errorf("views = %d after one render, want 1", views)
	}
}

func TestPostDetailUnknownSlug(t *testing.T) {
	env := newTestEnv(t)

	r := withChiURLParam(getRequest("/en/post/no-such-post/"), "slug", "no-such-post")
	rr := serve("en", env.Public.PostDetail, r)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestCategoryPostsHeading(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Safari Diaries", "safari-diaries")
	makePost(t, env.DB, catID, "Ngorongoro Morning", "ngorongoro-morning")

	r := withChiURLParam(getRequest("/en/category/safari-diaries/"), "slug", "safari-diaries")
	rr := serve("en", env.Public.CategoryPosts, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Safari Diaries") {
		t.Error("category heading missing")
	}
	if !strings.Contains(body, "Ngorongoro Morning") {
		t.Error("category post missing")
	}
}

func TestCategoryPostsUnknownSlug(t *testing.T) {
	env := newTestEnv(t)

	r := withChiURLParam(getRequest("/en/category/nope/"), "slug", "nope")
	rr := serve("en", env.Public.CategoryPosts, r)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestSearchFindsMatches(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Search Pages", "search-pages")
	makePost(t, env.DB, catID, "Kilimanjaro Trek Gear", "kilimanjaro-trek-gear")

	rr := serve("en", env.Public.Search, getRequest("/en/search/?q=kilimanjaro"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Kilimanjaro Trek Gear") {
		t.Error("matching post missing from results")
	}
	if !strings.Contains(body, "kilimanjaro") {
		t.Error("query echo missing from results page")
	}
}

func TestSearchMatchesSwahiliVariantOnly(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Bilingual Pages", "bilingual-pages")
	makePost(t, env.DB, catID, "Coastal Recipes", "coastal-recipes")
	if _, err := env.DB.Exec(
		`UPDATE posts SET body_en = 'plain english text',
		 title_sw = 'Mapishi ya Pwani', body_sw = 'vyakula vya mwambao'
		 WHERE slug = 'coastal-recipes'`,
	); err != nil {
		t.Fatalf("set swahili columns: %v", err)
	}

	// The query hits only the Swahili title; the English columns carry
	// none of it.
	rr := serve("en", env.Public.Search, getRequest("/en/search/?q=mapishi"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Coastal Recipes") {
		t.Error("post matched only by its Swahili title missing from results")
	}

	rr = serve("en", env.Public.Search, getRequest("/en/search/?q=mwambao"))
	if !strings.Contains(rr.Body.String(), "Coastal Recipes") {
		t.Error("post matched only by its Swahili body missing from results")
	}
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	env := newTestEnv(t)
	catID := makeCategory(t, env.DB, "Everything Pages", "everything-pages")
	makePost(t, env.DB, catID, "Listed Without Query", "listed-without-query")

	rr := serve("en", env.Public.Search, getRequest("/en/search/"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Listed Without Query") {
		t.Error("empty query should list published posts")
	}
}

func TestAboutAndContactPages(t *testing.T) {
	env := newTestEnv(t)

	if rr := serve("en", env.Public.About, getRequest("/en/about/")); rr.Code != http.StatusOK {
		t.Errorf("about status = %d, want 200", rr.Code)
	}
	if rr := serve("sw", env.Public.ContactPage, getRequest("/sw/contact/")); rr.Code != http.StatusOK {
		t.Errorf("contact status = %d, want 200", rr.Code)
	}
}

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		form      url.Values
		flashType string
	}{
		{
			name: "valid message",
			form: url.Values{
				"name":    {"Neema"},
				"email":   {"neema@test.local"},
				"message": {"Habari yako, blog nzuri sana."},
			},
			flashType: flash.TypeSuccess,
		},
		{
			name: "bad email",
			form: url.Values{
				"name":    {"Neema"},
				"email":   {"not-an-email"},
				"message": {"Hello"},
			},
			flashType: flash.TypeError,
		},
		{
			name: "missing message",
			form: url.Values{
				"name":  {"Neema"},
				"email": {"neema@test.local"},
			},
			flashType: flash.TypeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve("en", env.Public.ContactSubmit, formRequest("/en/contact/", tt.form))

			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != "/en/contact/" {
				t.Errorf("Location = %q, want /en/contact/", loc)
			}
			msgs := popFlashes(rr)
			if len(msgs) != 1 || msgs[0].Type != tt.flashType {
				t.Errorf("flashes = %+v, want one %s", msgs, tt.flashType)
			}
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := serve("sw", env.Public.NotFound, getRequest("/sw/missing/"))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
