package models

// CategorySummary is one sidebar row: a category that has at least one
// published post, its published-post count, and its oldest published
// post used as the representative link.
type CategorySummary struct {
	Category   Category `json:"category"`
	PostCount  int      `json:"post_count"`
	OldestPost Post     `json:"oldest_post"`
}

// Sidebar holds the aggregation rendered on every page: category
// summaries plus the most-viewed published posts. It is JSON-cached, so
// all fields must serialize cleanly.
type Sidebar struct {
	Categories []CategorySummary `json:"categories"`
	Popular    []Post            `json:"popular"`
}
