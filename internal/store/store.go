// Package store persists crawl runs, merged records, and a TTL page cache.
package store

import (
	"context"
	"time"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// Store defines the persistence interface for the crawl pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// Records
	SaveRecords(ctx context.Context, runID string, records []model.MergedRecord) error
	// ListRecords returns the records of the given run; an empty runID means
	// the most recent completed run.
	ListRecords(ctx context.Context, runID string) ([]model.MergedRecord, error)

	// Page cache
	GetCachedPage(ctx context.Context, url string) (*model.Page, error)
	SetCachedPage(ctx context.Context, page *model.Page, ttl time.Duration) error
	DeleteExpiredPages(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
