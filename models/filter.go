package models

import "math"

// FloatRange is a closed interval [Min, Max].
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the closed interval.
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange is a closed interval [Min, Max].
type IntRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether v lies within the closed interval.
func (r IntRange) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterCriteria is the complete selection state. It is always replaced as a
// whole; empty sets mean no restriction.
type FilterCriteria struct {
	Categories          []string        `json:"categories"`
	RatingRange         FloatRange      `json:"rating_range"`
	Sentiments          []Sentiment     `json:"sentiments"`
	AppTypes            []AppType       `json:"app_types"`
	InstallsRange       IntRange        `json:"installs_range"`
	ContentRatings      []ContentRating `json:"content_ratings"`
	RecentlyUpdatedOnly bool            `json:"recently_updated_only"`
}

// DefaultCriteria returns criteria that let every valid record through.
// The rating range starts at 0 so unrated apps are not excluded.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Categories:     []string{},
		RatingRange:    FloatRange{Min: 0, Max: 5},
		Sentiments:     []Sentiment{},
		AppTypes:       []AppType{},
		InstallsRange:  IntRange{Min: 0, Max: math.MaxInt64},
		ContentRatings: []ContentRating{},
	}
}

// Clone returns a deep copy so callers can never alias the slices held by a
// published snapshot.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	out.Categories = append([]string{}, c.Categories...)
	out.Sentiments = append([]Sentiment{}, c.Sentiments...)
	out.AppTypes = append([]AppType{}, c.AppTypes...)
	out.ContentRatings = append([]ContentRating{}, c.ContentRatings...)
	return out
}
