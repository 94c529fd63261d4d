package rating

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookstores/internal/platform/logger"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	StatusForwarded = "FORWARDED"
	StatusFailed    = "FAILED"
)

// Change is one rating submission and whether the store API accepted it.
type Change struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	UserID      string    `json:"user_id,omitempty"`
	Rating      float64   `json:"rating"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Sink persists a store's rating upstream.
type Sink interface {
	UpdateStoreRating(ctx context.Context, storeID string, rating float64) error
}

type Repository interface {
	RecordChange(ctx context.Context, c *Change) error
	ListChanges(ctx context.Context, storeID string, limit int) ([]Change, error)
}

type Service struct {
	sink   Sink
	repo   Repository
	logger logger.Logger
}

func NewService(sink Sink, repo Repository, log logger.Logger) *Service {
	if repo == nil {
		repo = NewMemoryRepo(0)
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{sink: sink, repo: repo, logger: log}
}

// Rate forwards a rating to the store API and records the outcome. History
// failures are logged and do not fail the call.
func (s *Service) Rate(ctx context.Context, userID, storeID string, rating float64) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	change := &Change{
		StoreID:     storeID,
		UserID:      userID,
		Rating:      rating,
		Status:      StatusForwarded,
		RequestedAt: time.Now(),
	}
	err := s.sink.UpdateStoreRating(ctx, storeID, rating)
	if err != nil {
		change.Status = StatusFailed
		change.Error = err.Error()
		err = fmt.Errorf("update rating of store %s: %w", storeID, err)
	}

	if recErr := s.repo.RecordChange(ctx, change); recErr != nil {
		s.logger.Warn("failed to record rating change", zap.String("store_id", storeID), zap.Error(recErr))
	}
	return err
}

func (s *Service) History(ctx context.Context, storeID string, limit int) ([]Change, error) {
	return s.repo.ListChanges(ctx, storeID, limit)
}

// MemoryRepo keeps a bounded rating history in memory when no database is configured.
type MemoryRepo struct {
	mu      sync.Mutex
	changes []Change
	max     int
	seq     int
}

func NewMemoryRepo(max int) *MemoryRepo {
	if max <= 0 {
		max = 500
	}
	return &MemoryRepo{max: max}
}

func (r *MemoryRepo) RecordChange(ctx context.Context, c *Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c.ID = fmt.Sprint(r.seq)
	r.changes = append(r.changes, *c)
	if len(r.changes) > r.max {
		r.changes = r.changes[len(r.changes)-r.max:]
	}
	return nil
}

// ListChanges returns the newest changes for storeID first.
func (r *MemoryRepo) ListChanges(ctx context.Context, storeID string, limit int) ([]Change, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Change
	for i := len(r.changes) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if r.changes[i].StoreID == storeID {
			out = append(out, r.changes[i])
		}
	}
	return out, nil
}
