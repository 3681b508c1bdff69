package models

import "time"

// RawApp holds one unprocessed row of the app catalog exactly as read from
// the source. Nothing is coerced yet.
type RawApp struct {
	App            string
	Category       string
	Rating         string
	Reviews        string
	Size           string
	Installs       string
	Type           string
	Price          string
	ContentRating  string
	Genres         string
	LastUpdated    string
	CurrentVersion string
	AndroidVersion string
}

// RawReview holds one unprocessed row of the review set.
type RawReview struct {
	App          string
	Review       string
	HasReview    bool
	Sentiment    string
	Polarity     string
	Subjectivity string
}

// AppType is the pricing model of an app.
type AppType string

const (
	AppTypeFree AppType = "Free"
	AppTypePaid AppType = "Paid"
)

// AppTypes lists every AppType in display order.
var AppTypes = []AppType{AppTypeFree, AppTypePaid}

// ContentRating is the audience rating assigned by the store.
type ContentRating string

const (
	ContentRatingEveryone   ContentRating = "Everyone"
	ContentRatingEveryone10 ContentRating = "Everyone 10+"
	ContentRatingTeen       ContentRating = "Teen"
	ContentRatingMature     ContentRating = "Mature 17+"
	ContentRatingAdultsOnly ContentRating = "Adults only 18+"
	ContentRatingUnrated    ContentRating = "Unrated"
	ContentRatingUnknown    ContentRating = "Unknown"
)

// ContentRatings lists every ContentRating in display order.
var ContentRatings = []ContentRating{
	ContentRatingEveryone,
	ContentRatingEveryone10,
	ContentRatingTeen,
	ContentRatingMature,
	ContentRatingAdultsOnly,
	ContentRatingUnrated,
	ContentRatingUnknown,
}

// Sentiment is the classification attached to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists every Sentiment in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// App is a cleaned app catalog record. Raw string fields are kept next to
// their normalized values so views can show the original text.
type App struct {
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	Rating         float64       `json:"rating"`
	Reviews        int64         `json:"reviews"`
	Installs       string        `json:"installs"`
	Type           AppType       `json:"type"`
	Price          string        `json:"price"`
	ContentRating  ContentRating `json:"content_rating"`
	Genres         string        `json:"genres"`
	Size           string        `json:"size"`
	LastUpdated    string        `json:"last_updated"`
	CurrentVersion string        `json:"current_version"`
	AndroidVersion string        `json:"android_version"`

	InstallCount int64      `json:"install_count"`
	SizeMB       float64    `json:"size_mb"`
	PriceUSD     float64    `json:"price_usd"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// IsFree reports whether the app is free to install.
func (a *App) IsFree() bool {
	return a.Type == AppTypeFree
}

// Review is a cleaned review record. Text is nil when the source had no
// review body.
type Review struct {
	AppName      string    `json:"app_name"`
	Text         *string   `json:"text,omitempty"`
	Sentiment    Sentiment `json:"sentiment"`
	Polarity     float64   `json:"polarity"`
	Subjectivity float64   `json:"subjectivity"`
}
