package list

import (
	"context"
	"strings"

	"skillswap-cli/internal/domain/user"
)

// Source supplies one page of members for a search term. LocalSource filters
// a full in-memory slice; RemoteSource delegates search and paging to the
// API. Both honor the same matching semantics, so pages can swap one for the
// other without forking.
type Source interface {
	Page(ctx context.Context, term string, page, pageSize int) (items []user.User, total int, err error)
}

// View is the visible slice a page renders.
type View struct {
	Items      []user.User
	Total      int
	Page       int
	TotalPages int
}

// Matches reports whether term case-insensitively matches the user's name or
// any entry in either skill collection. An empty term matches everyone.
func Matches(u *user.User, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(u.FullName()), term) {
		return true
	}
	for _, s := range u.SkillsOffered {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	for _, s := range u.SkillsWanted {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Controller holds the search term and page index and derives the visible
// subset. Changing the term always resets to page 1; out-of-range page
// navigation clamps instead of failing.
type Controller struct {
	source   Source
	term     string
	page     int
	pageSize int

	// lastTotal remembers the result-set size of the latest Visible call
	// so page navigation can clamp before the next fetch.
	lastTotal int
}

func NewController(source Source, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Controller{source: source, page: 1, pageSize: pageSize}
}

// SetSearch updates the term. A changed term resets the page index to 1.
func (c *Controller) SetSearch(term string) {
	if term == c.term {
		return
	}
	c.term = term
	c.page = 1
	c.lastTotal = 0
}

// Search returns the current term.
func (c *Controller) Search() string { return c.term }

// Page returns the current page index.
func (c *Controller) Page() int { return c.page }

// PageSize returns the configured page size.
func (c *Controller) PageSize() int { return c.pageSize }

// TotalPages derives the page count from the last seen total.
func (c *Controller) TotalPages() int {
	return pageCount(c.lastTotal, c.pageSize)
}

// SetPage navigates to page n, clamped to the known range. Out-of-range
// requests land on the nearest valid page; they are never an error.
func (c *Controller) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if max := c.TotalPages(); max > 0 && n > max {
		n = max
	}
	c.page = n
}

// Next advances one page. A no-op on the last page.
func (c *Controller) Next() { c.SetPage(c.page + 1) }

// Prev goes back one page. A no-op on the first page.
func (c *Controller) Prev() { c.SetPage(c.page - 1) }

// Visible computes the page the user should see right now.
func (c *Controller) Visible(ctx context.Context) (*View, error) {
	items, total, err := c.source.Page(ctx, c.term, c.page, c.pageSize)
	if err != nil {
		return nil, err
	}
	c.lastTotal = total

	// The result set may have shrunk underneath the current index.
	if max := pageCount(total, c.pageSize); max > 0 && c.page > max {
		c.page = max
		items, total, err = c.source.Page(ctx, c.term, c.page, c.pageSize)
		if err != nil {
			return nil, err
		}
		c.lastTotal = total
	}

	return &View{
		Items:      items,
		Total:      total,
		Page:       c.page,
		TotalPages: pageCount(total, c.pageSize),
	}, nil
}

func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
