package storefront

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=storefront

import (
	"context"

	"bookstores/internal/jsonapi"
)

// StoreSource fetches the primary store document.
type StoreSource interface {
	FetchStores(ctx context.Context) (*jsonapi.Document, error)
}

// FlagSource looks up flags for a comma-separated batch of country codes.
type FlagSource interface {
	FetchFlags(ctx context.Context, batchKey string) ([]Flag, error)
}

// RunRepository records refresh runs.
type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
