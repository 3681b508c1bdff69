package services

import (
	"context"
	"errors"
	"fmt"

	"playstore-insights/models"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

// ErrNoApps is returned when the app source parses to zero valid rows.
var ErrNoApps = errors.New("app source yielded no valid rows")

// Dataset is the clean, immutable pair of record sets for a session.
type Dataset struct {
	Apps    []*models.App
	Reviews []*models.Review
	// Dropped counts raw rows discarded by the validity rules.
	Dropped int
}

// Loader fetches both raw sources and cleans them into a Dataset.
type Loader struct {
	source  storage.DatasetSource
	cleaner *Cleaner
	logger  *utils.Logger
}

// NewLoader creates a Loader reading from source.
func NewLoader(source storage.DatasetSource, logger *utils.Logger) *Loader {
	return &Loader{
		source:  source,
		cleaner: NewCleaner(logger),
		logger:  logger,
	}
}

// Load fetches apps and reviews in parallel, cleans them and validates the
// result. Any source failure, or an app set that is empty after cleaning,
// fails the whole load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	var (
		rawApps    []*models.RawApp
		rawReviews []*models.RawReview
		appsErr    error
		reviewsErr error
	)

	pool := utils.NewWorkerPool(2, 0)
	pool.Submit(func() { rawApps, appsErr = l.source.FetchApps(ctx) })
	pool.Submit(func() { rawReviews, reviewsErr = l.source.FetchReviews(ctx) })
	pool.Wait()

	if err := errors.Join(appsErr, reviewsErr); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	l.logger.Info("[loader] Fetched %d raw apps and %d raw reviews", len(rawApps), len(rawReviews))

	ds := &Dataset{
		Apps:    l.cleaner.CleanApps(rawApps),
		Reviews: l.cleaner.CleanReviews(rawReviews),
	}
	ds.Dropped = len(rawApps) - len(ds.Apps) + len(rawReviews) - len(ds.Reviews)

	if len(ds.Apps) == 0 {
		return nil, fmt.Errorf("load datasets: %w", ErrNoApps)
	}
	return ds, nil
}
