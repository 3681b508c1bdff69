package services

import (
	"time"

	"playstore-insights/models"
)

// RecentWindowMonths is how far back "recently updated" reaches.
const RecentWindowMonths = 6

// Snapshot is one consistent, immutable result of applying criteria to the
// loaded datasets. Reviews are always derived from Apps, never from the raw
// criteria alone.
type Snapshot struct {
	Criteria models.FilterCriteria
	Apps     []*models.App
	Reviews  []*models.Review
}

// FilterEngine applies FilterCriteria to record sets. It never mutates its
// inputs.
type FilterEngine struct {
	now func() time.Time
}

// NewFilterEngine creates a FilterEngine using the wall clock.
func NewFilterEngine() *FilterEngine {
	return &FilterEngine{now: time.Now}
}

// NewFilterEngineAt creates a FilterEngine whose clock is fixed by now. Used
// where the recency window must be reproducible.
func NewFilterEngineAt(now func() time.Time) *FilterEngine {
	return &FilterEngine{now: now}
}

// Derive computes the filtered app set first and then the review set from it.
func (e *FilterEngine) Derive(apps []*models.App, reviews []*models.Review, criteria models.FilterCriteria) Snapshot {
	criteria = criteria.Clone()
	filteredApps := e.ApplyFilters(apps, criteria)
	return Snapshot{
		Criteria: criteria,
		Apps:     filteredApps,
		Reviews:  ApplyReviewFilters(reviews, filteredApps, criteria),
	}
}

// ApplyFilters returns the apps matching every active predicate, in input order.
func (e *FilterEngine) ApplyFilters(apps []*models.App, criteria models.FilterCriteria) []*models.App {
	categories := toSet(criteria.Categories)
	types := toSet(criteria.AppTypes)
	ratings := toSet(criteria.ContentRatings)

	var cutoff time.Time
	if criteria.RecentlyUpdatedOnly {
		cutoff = e.now().AddDate(0, -RecentWindowMonths, 0)
	}

	result := make([]*models.App, 0, len(apps))
	for _, a := range apps {
		if len(categories) > 0 && !categories[a.Category] {
			continue
		}
		if !criteria.RatingRange.Contains(a.Rating) {
			continue
		}
		if len(types) > 0 && !types[a.Type] {
			continue
		}
		if len(ratings) > 0 && !ratings[a.ContentRating] {
			continue
		}
		if !criteria.InstallsRange.Contains(a.InstallCount) {
			continue
		}
		if criteria.RecentlyUpdatedOnly && (a.UpdatedAt == nil || a.UpdatedAt.Before(cutoff)) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// ApplyReviewFilters keeps reviews whose app survived the app filter and
// whose sentiment is selected. Orphan reviews never survive.
func ApplyReviewFilters(reviews []*models.Review, filteredApps []*models.App, criteria models.FilterCriteria) []*models.Review {
	names := make(map[string]bool, len(filteredApps))
	for _, a := range filteredApps {
		names[a.Name] = true
	}
	sentiments := toSet(criteria.Sentiments)

	result := make([]*models.Review, 0)
	for _, r := range reviews {
		if !names[r.AppName] {
			continue
		}
		if len(sentiments) > 0 && !sentiments[r.Sentiment] {
			continue
		}
		result = append(result, r)
	}
	return result
}

func toSet[T comparable](values []T) map[T]bool {
	set := make(map[T]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
