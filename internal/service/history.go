package service

import (
	"sync"
	"time"

	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/hindsightlabs/hindsight/internal/core"
)

// Record is one stored backtest run.
type Record struct {
	ID       string
	Strategy string
	RanAt    time.Time
	Settings backtest.Settings
	Metrics  backtest.Metrics
}

// HistoryStore is the append-only store of completed runs. The store
// is owned by the caller of the service, not hidden inside it, so a
// process can decide its own retention.
type HistoryStore interface {
	Append(r Record)
	Get(id string) (*Record, error)
	List() []Record
}

// MemoryHistory is an in-memory HistoryStore, safe for concurrent use.
type MemoryHistory struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryHistory creates an empty in-memory history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Append adds a record.
func (h *MemoryHistory) Append(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
}

// Get retrieves a record by id.
func (h *MemoryHistory) Get(id string) (*Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.records {
		if h.records[i].ID == id {
			rec := h.records[i]
			return &rec, nil
		}
	}
	return nil, core.ErrResultNotFound
}

// List returns all records in append order.
func (h *MemoryHistory) List() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}
