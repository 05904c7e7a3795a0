// Package cursor implements token-based page navigation over an external
// page-fetch collaborator. The cursor only tracks position; row data lives
// with the caller.
package cursor

import (
	"context"
	"errors"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// maxJumpFetches bounds how many sequential fetches a forward jump may
// perform before giving up and settling on the last reached page.
const maxJumpFetches = 25

// ErrJumpInProgress is returned when a jump starts while another one has not
// finished.
var ErrJumpInProgress = errors.New("page jump already in progress")

// Page is one fetched window of rows, in the shape the page collaborator
// reports it.
type Page struct {
	Columns      []string      `json:"columns"`
	Rows         []dataset.Row `json:"rows"`
	NextCursor   string        `json:"nextCursor"`
	PrevCursor   string        `json:"prevCursor"`
	TotalRows    int           `json:"totalRows"`
	FilteredRows int           `json:"filteredRows"`
	TotalPages   int           `json:"totalPages"`
}

// Fetcher retrieves the page addressed by a cursor token. The empty token
// addresses the first page.
type Fetcher interface {
	FetchPage(ctx context.Context, token string) (Page, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, token string) (Page, error)

func (f FetcherFunc) FetchPage(ctx context.Context, token string) (Page, error) {
	return f(ctx, token)
}

// Cursor is the pagination state machine. Page 0 is always addressed by the
// empty token; the stack remembers the token of every page behind the
// current one so backward moves never need a fetch to find their address.
type Cursor struct {
	page    int
	token   string
	stack   []string
	jumping bool
}

// New returns a cursor positioned on page 0.
func New() *Cursor {
	return &Cursor{}
}

// Page reports the current zero-based page index.
func (c *Cursor) Page() int { return c.page }

// Token reports the cursor token addressing the current page. Empty means
// page 0.
func (c *Cursor) Token() string { return c.token }

// Depth reports how many pages sit behind the current one.
func (c *Cursor) Depth() int { return len(c.stack) }

// GoNext advances one page using the next-cursor token the current page
// reported. A missing token means there is no next page and the call is a
// no-op. Reports whether the cursor moved.
func (c *Cursor) GoNext(token string) bool {
	if token == "" {
		return false
	}
	c.stack = append(c.stack, c.token)
	c.token = token
	c.page++
	return true
}

// GoPrev steps back one page by restoring the previously pushed token.
// A no-op on page 0 or with an empty stack. Reports whether the cursor
// moved.
func (c *Cursor) GoPrev() bool {
	if c.page == 0 || len(c.stack) == 0 {
		return false
	}
	c.token = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.page--
	return true
}

// Reset returns the cursor to page 0 and forgets the stack. Called when the
// underlying query changes and every remembered token goes stale.
func (c *Cursor) Reset() {
	c.page = 0
	c.token = ""
	c.stack = nil
	c.jumping = false
}

// JumpTo moves to page n.
//
// Backward jumps replay the stored token stack and perform no fetching; the
// returned page is nil and the caller refetches at the restored token if it
// needs rows. Forward jumps walk page by page through the fetcher, at most
// maxJumpFetches fetches, stopping early when a page reports no further
// cursor; the last fetched page is returned so the caller can materialize
// it. While a jump is running further jumps fail with ErrJumpInProgress.
func (c *Cursor) JumpTo(ctx context.Context, n int, f Fetcher) (*Page, error) {
	if c.jumping {
		return nil, ErrJumpInProgress
	}
	if n < 0 {
		n = 0
	}
	if n == c.page {
		return nil, nil
	}
	if n < c.page {
		c.token = c.stack[n]
		c.stack = c.stack[:n]
		c.page = n
		return nil, nil
	}

	c.jumping = true
	defer func() { c.jumping = false }()

	var last *Page
	for fetches := 0; fetches < maxJumpFetches; fetches++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		p, err := f.FetchPage(ctx, c.token)
		if err != nil {
			return last, err
		}
		last = &p
		// budget exhaustion settles on the last fetched page instead of
		// advancing past it
		if c.page == n || p.NextCursor == "" || fetches == maxJumpFetches-1 {
			break
		}
		c.GoNext(p.NextCursor)
	}
	return last, nil
}
