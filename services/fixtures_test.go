package services

import (
	"time"

	"playstore-insights/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func app(name, category string, rating float64, installs string, typ models.AppType) *models.App {
	return &models.App{
		Name:          name,
		Category:      category,
		Rating:        rating,
		Installs:      installs,
		InstallCount:  ParseInstallCount(installs),
		Type:          typ,
		ContentRating: models.ContentRatingEveryone,
	}
}

func review(appName string, s models.Sentiment, polarity, subjectivity float64) *models.Review {
	return &models.Review{AppName: appName, Sentiment: s, Polarity: polarity, Subjectivity: subjectivity}
}

func sampleApps() []*models.App {
	a := app("Alpha", "GAME", 4.5, "1,000+", models.AppTypeFree)
	a.Reviews = 120
	a.SizeMB = 19
	a.UpdatedAt = date(2026, time.August, 1)
	a.AndroidVersion = "4.1 and up"

	b := app("Beta", "GAME", 2.0, "100+", models.AppTypePaid)
	b.Reviews = 5
	b.PriceUSD = 1.99
	b.SizeMB = 0
	b.ContentRating = models.ContentRatingTeen
	b.UpdatedAt = date(2025, time.January, 5)
	b.AndroidVersion = "4.0.3 and up"

	c := app("Gamma", "TOOLS", 4.9, "10,000,000+", models.AppTypeFree)
	c.Reviews = 90000
	c.SizeMB = 120
	c.ContentRating = models.ContentRatingEveryone10
	c.AndroidVersion = "4.1 and up"

	d := app("Delta", "TOOLS", 0, "50+", models.AppTypeFree)
	d.SizeMB = 8
	d.ContentRating = models.ContentRatingUnknown
	d.UpdatedAt = date(2026, time.October, 1)
	d.AndroidVersion = "Varies with device"

	e := app("Epsilon", "ART_AND_DESIGN", 5.0, "500,000+", models.AppTypePaid)
	e.Reviews = 700
	e.PriceUSD = 4.99
	e.SizeMB = 30
	e.AndroidVersion = "5.0 and up"

	return []*models.App{a, b, c, d, e}
}

func sampleReviews() []*models.Review {
	return []*models.Review{
		review("Alpha", models.SentimentPositive, 0.8, 0.6),
		review("Alpha", models.SentimentNegative, -0.4, 0.7),
		review("Beta", models.SentimentNeutral, 0, 0),
		review("Gamma", models.SentimentPositive, 0.3, 0.2),
		review("Orphan", models.SentimentPositive, 1, 1),
	}
}

var fixedNow = time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)

func fixedEngine() *FilterEngine {
	return NewFilterEngineAt(func() time.Time { return fixedNow })
}
