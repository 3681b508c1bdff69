package storage

import (
	"context"

	"playstore-insights/models"
)

// DatasetSource is the interface any dataset backend must satisfy. Both
// fetches are read-only and happen once per session.
type DatasetSource interface {
	FetchApps(ctx context.Context) ([]*models.RawApp, error)
	FetchReviews(ctx context.Context) ([]*models.RawReview, error)
	Close() error
}

// Column headers of the app catalog source.
const (
	ColApp            = "App"
	ColCategory       = "Category"
	ColRating         = "Rating"
	ColReviews        = "Reviews"
	ColSize           = "Size"
	ColInstalls       = "Installs"
	ColType           = "Type"
	ColPrice          = "Price"
	ColContentRating  = "Content Rating"
	ColGenres         = "Genres"
	ColLastUpdated    = "Last Updated"
	ColCurrentVersion = "Current Ver"
	ColAndroidVersion = "Android Ver"
)

// Column headers of the review source.
const (
	ColReviewApp    = "App"
	ColReviewText   = "Translated_Review"
	ColSentiment    = "Sentiment"
	ColPolarity     = "Sentiment_Polarity"
	ColSubjectivity = "Sentiment_Subjectivity"
)
