package storefront

import (
	"context"
	"strconv"
	"sync"
	"time"
)

const (
	RunRunning   = "RUNNING"
	RunCompleted = "COMPLETED"
	RunFailed    = "FAILED"
)

// Run is the audit record of one refresh.
type Run struct {
	ID             string     `json:"id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	Status         string     `json:"status"`
	StoresResolved int        `json:"stores_resolved"`
	BooksResolved  int        `json:"books_resolved"`
	Unresolved     int        `json:"unresolved_references"`
	Skipped        int        `json:"skipped_resources"`
	BatchKey       string     `json:"batch_key"`
	FlagsFetched   int        `json:"flags_fetched"`
	FlagsMatched   int        `json:"flags_matched"`
	Error          string     `json:"error,omitempty"`
}

// MemoryRunRepo keeps the most recent runs in memory. It is used when no
// database is configured.
type MemoryRunRepo struct {
	mu   sync.Mutex
	runs []Run
	max  int
	seq  int
}

func NewMemoryRunRepo(max int) *MemoryRunRepo {
	if max <= 0 {
		max = 50
	}
	return &MemoryRunRepo{max: max}
}

func (r *MemoryRunRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := strconv.Itoa(r.seq)
	stored := *run
	stored.ID = id
	r.runs = append(r.runs, stored)
	if len(r.runs) > r.max {
		r.runs = r.runs[len(r.runs)-r.max:]
	}
	return id, nil
}

func (r *MemoryRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
			return nil
		}
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (r *MemoryRunRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Run, 0, len(r.runs))
	for i := len(r.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, r.runs[i])
	}
	return out, nil
}
