package storefront

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"bookstores/internal/platform/logger"
)

type Config struct {
	KindPolicy  KindPolicy
	Parallelism int
}

type Service struct {
	stores StoreSource
	flags  FlagSource
	runs   RunRepository
	logger logger.Logger
	cfg    Config
}

func NewService(stores StoreSource, flags FlagSource, runs RunRepository, log logger.Logger, cfg Config) *Service {
	if runs == nil {
		runs = NewMemoryRunRepo(0)
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{
		stores: stores,
		flags:  flags,
		runs:   runs,
		logger: log,
		cfg:    cfg,
	}
}

// Refresh fetches the store document and turns it into the view model. Any error
// aborts the whole refresh; no partial list is returned.
func (s *Service) Refresh(ctx context.Context) (stores []Store, err error) {
	run := &Run{
		Status:    RunRunning,
		StartedAt: time.Now(),
	}
	runID, rErr := s.runs.CreateRun(ctx, run)
	if rErr != nil {
		s.logger.Warn("failed to record refresh run", zap.Error(rErr))
	}
	run.ID = runID

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = RunFailed
			run.Error = err.Error()
			s.logger.Error("refresh failed", zap.String("run_id", run.ID), zap.Error(err))
		} else {
			run.Status = RunCompleted
			s.logger.Info("refresh completed",
				zap.String("run_id", run.ID),
				zap.Int("stores", run.StoresResolved),
				zap.Int("flags_matched", run.FlagsMatched),
				zap.Duration("duration", now.Sub(run.StartedAt)),
			)
		}
		if run.ID == "" {
			return
		}
		if updateErr := s.runs.UpdateRun(ctx, run); updateErr != nil {
			s.logger.Warn("failed to update refresh run", zap.String("run_id", run.ID), zap.Error(updateErr))
		}
	}()

	doc, err := s.stores.FetchStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stores: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	idx, err := BuildIndex(doc.Included, s.cfg.KindPolicy)
	if err != nil {
		return nil, fmt.Errorf("index included resources: %w", err)
	}
	for _, skipped := range idx.Skipped {
		s.logger.Warn("skipped included resource", zap.String("type", skipped.Type), zap.String("id", skipped.ID))
	}
	run.Skipped = len(idx.Skipped)

	res, err := Resolve(ctx, doc.Data, idx, s.cfg.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("resolve stores: %w", err)
	}
	unresolved := slices.Concat(idx.Unresolved, res.Unresolved)
	for _, ref := range unresolved {
		s.logger.Warn("unresolved reference",
			zap.Stringer("kind", ref.Kind),
			zap.String("id", ref.ID),
			zap.String("from", ref.From),
		)
	}
	run.Unresolved = len(unresolved)
	run.StoresResolved = len(res.Stores)
	for _, st := range res.Stores {
		run.BooksResolved += len(st.Books)
	}

	key, skip := BatchKey(res.Stores)
	run.BatchKey = key
	if skip {
		s.logger.Debug("no country codes to look up, skipping flags fetch")
		return res.Stores, nil
	}

	flags, err := s.flags.FetchFlags(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch flags: %w", err)
	}
	run.FlagsFetched = len(flags)

	stores = MergeFlags(res.Stores, flags)
	run.FlagsMatched = FlagsMatched(stores)
	return stores, nil
}

// Runs returns the most recent refresh runs, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.runs.ListRuns(ctx, limit)
}
