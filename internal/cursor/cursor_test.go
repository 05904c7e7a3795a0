package cursor

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/Zedyas/zen-data-explorer/internal/dataset"
)

// pagedFetcher serves a fixed number of pages. Page i is addressed by
// token "p<i>" (page 0 by the empty token) and links to page i+1.
type pagedFetcher struct {
	pages   int
	fetches int
}

func (f *pagedFetcher) FetchPage(_ context.Context, token string) (Page, error) {
	f.fetches++
	idx := 0
	if token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, "p"))
		if err != nil {
			return Page{}, errors.New("unknown token " + token)
		}
		idx = n
	}
	p := Page{
		Columns:    []string{"v"},
		Rows:       []dataset.Row{{"v": idx}},
		TotalPages: f.pages,
	}
	if idx+1 < f.pages {
		p.NextCursor = "p" + strconv.Itoa(idx+1)
	}
	if idx > 0 {
		p.PrevCursor = "p" + strconv.Itoa(idx-1)
	}
	return p, nil
}

func TestGoNextGoPrev(t *testing.T) {
	c := New()
	if c.Page() != 0 || c.Token() != "" {
		t.Fatalf("fresh cursor: page=%d token=%q", c.Page(), c.Token())
	}

	if c.GoNext("") {
		t.Error("GoNext with no token must be a no-op")
	}
	if !c.GoNext("p1") || c.Page() != 1 || c.Token() != "p1" {
		t.Fatalf("after GoNext: page=%d token=%q", c.Page(), c.Token())
	}
	if !c.GoNext("p2") || c.Page() != 2 || c.Depth() != 2 {
		t.Fatalf("after two GoNext: page=%d depth=%d", c.Page(), c.Depth())
	}

	if !c.GoPrev() || c.Page() != 1 || c.Token() != "p1" {
		t.Fatalf("after GoPrev: page=%d token=%q", c.Page(), c.Token())
	}
	if !c.GoPrev() || c.Page() != 0 || c.Token() != "" {
		t.Fatalf("back to start: page=%d token=%q", c.Page(), c.Token())
	}
	if c.GoPrev() {
		t.Error("GoPrev on page 0 must be a no-op")
	}
}

func TestJumpForward(t *testing.T) {
	c := New()
	f := &pagedFetcher{pages: 10}

	p, err := c.JumpTo(context.Background(), 3, f)
	if err != nil {
		t.Fatal(err)
	}
	if c.Page() != 3 || c.Token() != "p3" {
		t.Fatalf("after jump: page=%d token=%q", c.Page(), c.Token())
	}
	if p == nil || p.Rows[0]["v"] != 3 {
		t.Fatalf("jump should return the destination page, got %+v", p)
	}
	// pages 0..3 each fetched once
	if f.fetches != 4 {
		t.Errorf("fetches = %d, want 4", f.fetches)
	}
}

func TestJumpForwardStopsAtLastPage(t *testing.T) {
	c := New()
	f := &pagedFetcher{pages: 3}

	p, err := c.JumpTo(context.Background(), 50, f)
	if err != nil {
		t.Fatal(err)
	}
	if c.Page() != 2 {
		t.Errorf("should stop on the last page, got %d", c.Page())
	}
	if p == nil || p.NextCursor != "" {
		t.Errorf("final page should report no next cursor: %+v", p)
	}
}

func TestJumpForwardFetchBudget(t *testing.T) {
	c := New()
	f := &pagedFetcher{pages: 1000}

	if _, err := c.JumpTo(context.Background(), 500, f); err != nil {
		t.Fatal(err)
	}
	if f.fetches != maxJumpFetches {
		t.Errorf("fetches = %d, want %d", f.fetches, maxJumpFetches)
	}
	if c.Page() != maxJumpFetches-1 {
		t.Errorf("page = %d, want %d", c.Page(), maxJumpFetches-1)
	}
}

func TestJumpBackwardReplaysStack(t *testing.T) {
	c := New()
	f := &pagedFetcher{pages: 10}
	if _, err := c.JumpTo(context.Background(), 5, f); err != nil {
		t.Fatal(err)
	}
	before := f.fetches

	p, err := c.JumpTo(context.Background(), 2, f)
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Error("backward jump must not fetch or return a page")
	}
	if f.fetches != before {
		t.Errorf("backward jump fetched %d times", f.fetches-before)
	}
	if c.Page() != 2 || c.Token() != "p2" || c.Depth() != 2 {
		t.Errorf("after backward jump: page=%d token=%q depth=%d", c.Page(), c.Token(), c.Depth())
	}
}

func TestJumpToCurrentPageIsNoop(t *testing.T) {
	c := New()
	f := &pagedFetcher{pages: 5}
	p, err := c.JumpTo(context.Background(), 0, f)
	if err != nil || p != nil || f.fetches != 0 {
		t.Errorf("jump to current page: p=%v err=%v fetches=%d", p, err, f.fetches)
	}
}

func TestJumpReentryRejected(t *testing.T) {
	c := New()
	inner := &pagedFetcher{pages: 10}

	// a fetcher that tries to start another jump mid-flight
	f := FetcherFunc(func(ctx context.Context, token string) (Page, error) {
		if _, err := c.JumpTo(ctx, 9, inner); !errors.Is(err, ErrJumpInProgress) {
			t.Errorf("re-entrant jump: err = %v, want ErrJumpInProgress", err)
		}
		return inner.FetchPage(ctx, token)
	})
	if _, err := c.JumpTo(context.Background(), 2, f); err != nil {
		t.Fatal(err)
	}
	if c.Page() != 2 {
		t.Errorf("outer jump should still land, page = %d", c.Page())
	}
}

func TestJumpFetchErrorSurfaces(t *testing.T) {
	c := New()
	boom := errors.New("backend unavailable")
	f := FetcherFunc(func(context.Context, string) (Page, error) {
		return Page{}, boom
	})
	if _, err := c.JumpTo(context.Background(), 3, f); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the fetch error", err)
	}
	if c.Page() != 0 {
		t.Errorf("failed first hop must not move the cursor, page = %d", c.Page())
	}
	// the flag clears even on error
	if _, err := c.JumpTo(context.Background(), 1, &pagedFetcher{pages: 5}); err != nil {
		t.Errorf("jump after failure: %v", err)
	}
}

func TestJumpCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New()
	if _, err := c.JumpTo(ctx, 3, &pagedFetcher{pages: 10}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.GoNext("p1")
	c.GoNext("p2")
	c.Reset()
	if c.Page() != 0 || c.Token() != "" || c.Depth() != 0 {
		t.Errorf("after reset: page=%d token=%q depth=%d", c.Page(), c.Token(), c.Depth())
	}
}
