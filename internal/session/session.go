// Package session holds the live exploration state: cells pairing a query
// spec with its latest committed result, run versioning for implicit
// cancellation, and memoized profiling.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Zedyas/zen-data-explorer/internal/profile"
	"github.com/google/uuid"
)

// Session is the registry of exploration cells. Cells are independent: no
// result set or config is shared between them.
type Session struct {
	mu    sync.Mutex
	cells map[string]*Cell
	order []string

	profileCfg profile.Config
	log        *slog.Logger
}

// New creates an empty session. New cells inherit cfg as their profiling
// configuration.
func New(cfg profile.Config, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		cells:      make(map[string]*Cell),
		profileCfg: cfg,
		log:        log,
	}
}

// NewCell creates a cell with a fresh id and registers it.
func (s *Session) NewCell() *Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	c := newCell(id, s.profileCfg, s.log)
	s.cells[id] = c
	s.order = append(s.order, id)
	return c
}

// Cell looks up a cell by id.
func (s *Session) Cell(id string) (*Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cells[id]
	return c, ok
}

// Remove drops a cell from the session.
func (s *Session) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cells[id]; !ok {
		return fmt.Errorf("cell not found: %s", id)
	}
	delete(s.cells, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Cells returns the cells in creation order.
func (s *Session) Cells() []*Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Cell, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cells[id])
	}
	return out
}

// Len reports how many cells the session holds.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cells)
}
