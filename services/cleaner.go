package services

import (
	"strings"
	"unicode"

	"playstore-insights/models"
	"playstore-insights/utils"
)

// Cleaner transforms raw rows into typed records and drops rows that fail
// the validity rules.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// CleanApps coerces every raw app row and keeps the valid ones, preserving
// source order. Invalid rows are dropped without an error.
func (c *Cleaner) CleanApps(raw []*models.RawApp) []*models.App {
	result := make([]*models.App, 0, len(raw))

	for _, r := range raw {
		app, ok := c.cleanApp(r)
		if !ok {
			continue
		}
		result = append(result, app)
	}

	c.logger.Info("[cleaner] Cleaned apps %d → %d (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// CleanReviews coerces every raw review row and keeps the valid ones.
func (c *Cleaner) CleanReviews(raw []*models.RawReview) []*models.Review {
	result := make([]*models.Review, 0, len(raw))

	for _, r := range raw {
		review, ok := c.cleanReview(r)
		if !ok {
			continue
		}
		result = append(result, review)
	}

	c.logger.Info("[cleaner] Cleaned reviews %d → %d (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func (c *Cleaner) cleanApp(r *models.RawApp) (*models.App, bool) {
	name := normaliseText(r.App)
	category := normaliseText(r.Category)
	if name == "" || category == "" {
		c.logger.Debug("[cleaner] Dropping app with empty name or category: %q", r.App)
		return nil, false
	}

	rating := ParseRating(r.Rating)
	if rating < 0 || rating > 5 {
		c.logger.Debug("[cleaner] Dropping app %q with rating out of range: %q", name, r.Rating)
		return nil, false
	}

	price := ParsePrice(r.Price)
	app := &models.App{
		Name:           name,
		Category:       category,
		Rating:         rating,
		Reviews:        ParseReviewCount(r.Reviews),
		Installs:       strings.TrimSpace(r.Installs),
		Type:           ParseAppType(r.Type, price),
		Price:          strings.TrimSpace(r.Price),
		ContentRating:  ParseContentRating(r.ContentRating),
		Genres:         normaliseText(r.Genres),
		Size:           strings.TrimSpace(r.Size),
		LastUpdated:    normaliseText(r.LastUpdated),
		CurrentVersion: strings.TrimSpace(r.CurrentVersion),
		AndroidVersion: strings.TrimSpace(r.AndroidVersion),

		InstallCount: ParseInstallCount(r.Installs),
		SizeMB:       ParseSize(r.Size),
		PriceUSD:     price,
	}
	if t, ok := ParseUpdateDate(r.LastUpdated); ok {
		app.UpdatedAt = &t
	}
	return app, true
}

func (c *Cleaner) cleanReview(r *models.RawReview) (*models.Review, bool) {
	appName := normaliseText(r.App)
	sentiment, ok := ParseSentiment(r.Sentiment)
	if appName == "" || !ok {
		return nil, false
	}

	review := &models.Review{
		AppName:      appName,
		Sentiment:    sentiment,
		Polarity:     ParseSentimentScore(r.Polarity),
		Subjectivity: ParseSentimentScore(r.Subjectivity),
	}
	if text := normaliseText(r.Review); r.HasReview && text != "" && !strings.EqualFold(text, "nan") {
		review.Text = &text
	}
	return review, true
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
