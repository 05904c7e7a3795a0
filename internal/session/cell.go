package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Zedyas/zen-data-explorer/internal/cursor"
	"github.com/Zedyas/zen-data-explorer/internal/dataset"
	"github.com/Zedyas/zen-data-explorer/internal/profile"
	"github.com/Zedyas/zen-data-explorer/internal/queryspec"
)

// QueryResult is what the external query collaborator reports back for one
// executed spec.
type QueryResult struct {
	Columns     []string      `json:"columns"`
	Rows        []dataset.Row `json:"rows"`
	RowCount    int           `json:"rowCount"`
	QueryText   string        `json:"generatedQueryText"`
	ProgramText string        `json:"generatedProgramText"`
}

// Executor runs a spec against the external query engine.
type Executor interface {
	Execute(ctx context.Context, spec queryspec.Spec) (QueryResult, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, spec queryspec.Spec) (QueryResult, error)

func (f ExecutorFunc) Execute(ctx context.Context, spec queryspec.Spec) (QueryResult, error) {
	return f(ctx, spec)
}

// CompareOutcome is the committed state of a two-sided run. Err carries both
// sides' failures joined with " | " when both failed.
type CompareOutcome struct {
	Left  *QueryResult
	Right *QueryResult
	Err   string
}

// Cell pairs one query spec with its latest committed result and the
// profiling output derived from it. Executions are fire-and-forget: every
// launch bumps the cell's run version and a completion whose version is no
// longer current is discarded on arrival. Spec mutations bump the version
// too, so results of a superseded spec can never land.
type Cell struct {
	ID string

	mu      sync.Mutex
	version uint64

	spec    queryspec.Spec
	result  *QueryResult
	errText string
	compare *CompareOutcome

	profileCfg profile.Config
	pager      *cursor.Cursor

	// profiling memo, keyed by result identity and config
	profiled       map[profile.ModuleID]any
	profiledResult *QueryResult
	profiledCfg    profile.Config

	log *slog.Logger
}

func newCell(id string, cfg profile.Config, log *slog.Logger) *Cell {
	return &Cell{
		ID:         id,
		spec:       queryspec.New(),
		profileCfg: cfg,
		pager:      cursor.New(),
		log:        log.With("cell", id),
	}
}

// Spec returns the cell's current spec value.
func (c *Cell) Spec() queryspec.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// SetSpec replaces the cell's spec, invalidates any in-flight execution and
// resets pagination, since every remembered cursor token addresses the old
// query.
func (c *Cell) SetSpec(s queryspec.Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.spec = s
	c.pager.Reset()
}

// Mutate applies a pure spec transformation under the cell's lock.
func (c *Cell) Mutate(fn func(queryspec.Spec) queryspec.Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.spec = fn(c.spec)
	c.pager.Reset()
}

// Pager returns the cell's pagination cursor.
func (c *Cell) Pager() *cursor.Cursor { return c.pager }

// Result returns the last committed result, or nil before the first
// successful run.
func (c *Cell) Result() *QueryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the last committed execution failure as a user-visible
// string, empty when the last run succeeded.
func (c *Cell) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errText
}

// Compared returns the outcome of the last committed two-sided run.
func (c *Cell) Compared() *CompareOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compare
}

// Run executes the cell's spec through the executor in a goroutine. The
// returned channel closes once the completion has been settled, committed
// or discarded. Callers that do not care may ignore it.
func (c *Cell) Run(ctx context.Context, ex Executor) <-chan struct{} {
	c.mu.Lock()
	c.version++
	version := c.version
	spec := c.spec
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := ex.Execute(ctx, spec)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.version != version {
			c.log.Debug("discarding stale result", "version", version, "current", c.version)
			return
		}
		c.compare = nil
		if err != nil {
			c.errText = err.Error()
			return
		}
		c.errText = ""
		c.result = &res
	}()
	return done
}

// Compare executes two specs independently and joins at a settle-both
// barrier: each side's result or error is held privately until both have
// resolved, then committed as one atomic update, and only if the cell's run
// version is still current.
func (c *Cell) Compare(ctx context.Context, ex Executor, left, right queryspec.Spec) <-chan struct{} {
	c.mu.Lock()
	c.version++
	version := c.version
	c.mu.Unlock()

	var (
		wg         sync.WaitGroup
		lres, rres QueryResult
		lerr, rerr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lres, lerr = ex.Execute(ctx, left)
	}()
	go func() {
		defer wg.Done()
		rres, rerr = ex.Execute(ctx, right)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.version != version {
			c.log.Debug("discarding stale comparison", "version", version, "current", c.version)
			return
		}
		out := &CompareOutcome{Err: joinErrors(lerr, rerr)}
		if lerr == nil {
			out.Left = &lres
		}
		if rerr == nil {
			out.Right = &rres
		}
		c.compare = out
		c.errText = out.Err
	}()
	return done
}

func joinErrors(l, r error) string {
	var parts []string
	if l != nil {
		parts = append(parts, l.Error())
	}
	if r != nil {
		parts = append(parts, r.Error())
	}
	return strings.Join(parts, " | ")
}

// ProfileConfig returns the cell's profiling configuration.
func (c *Cell) ProfileConfig() profile.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileCfg
}

// SetProfileConfig replaces the profiling configuration. The memoized
// profile stays valid only while both the result and the config are
// unchanged, so a differing config forces recomputation on the next call.
func (c *Cell) SetProfileConfig(cfg profile.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profileCfg = cfg
}

// Profile returns the profiling module outputs for the cell's committed
// result, recomputing only when the result or config changed since the last
// call. Returns nil before the first committed result.
func (c *Cell) Profile(now time.Time) map[profile.ModuleID]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return nil
	}
	if c.profiled != nil && c.profiledResult == c.result && c.profiledCfg == c.profileCfg {
		return c.profiled
	}
	out := profile.Run(profile.Input{
		Columns: c.result.Columns,
		Rows:    c.result.Rows,
		Config:  c.profileCfg,
		Now:     now,
	})
	c.profiled = out
	c.profiledResult = c.result
	c.profiledCfg = c.profileCfg
	return out
}
