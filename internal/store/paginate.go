package store

import "habari/internal/models"

// PageSize is the fixed number of posts per page on every listing.
const PageSize = 5

// PostPage is one page of a post listing plus the pagination state the
// templates need to render page links.
type PostPage struct {
	Posts      []models.Post
	Number     int // 1-based current page, already clamped
	TotalPages int
	TotalCount int
}

// HasPrev reports whether an earlier page exists.
func (p *PostPage) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p *PostPage) HasNext() bool { return p.Number < p.TotalPages }

// PrevNumber returns the previous page number (valid only when HasPrev).
func (p *PostPage) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the next page number (valid only when HasNext).
func (p *PostPage) NextNumber() int { return p.Number + 1 }

// clampPage normalizes a requested page number against the total item
// count. Requests below 1 clamp to the first page and requests past the
// end clamp to the last page; an empty result set still has one (empty)
// page. Returns the clamped page number and the total page count.
func clampPage(page, totalCount int) (int, int) {
	totalPages := (totalCount + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}
