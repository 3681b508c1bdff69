package models

// ChartPoint is one bar or slice of a categorical or binned view.
type ChartPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CategoryRollup aggregates the apps of one category.
type CategoryRollup struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	AvgRating     float64 `json:"avg_rating"`
	TotalInstalls int64   `json:"total_installs"`
	FreeRatio     float64 `json:"free_ratio"`
}

// CategorySentiment aggregates the filtered reviews of one category.
type CategorySentiment struct {
	Category    string  `json:"category"`
	Positive    int     `json:"positive"`
	Neutral     int     `json:"neutral"`
	Negative    int     `json:"negative"`
	AvgPolarity float64 `json:"avg_polarity"`
}

// CorrelationPoint is one sample of a scatter view.
type CorrelationPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Summary holds the headline numbers of the current filtered sets.
type Summary struct {
	TotalApps     int     `json:"total_apps"`
	TotalReviews  int     `json:"total_reviews"`
	RatedApps     int     `json:"rated_apps"`
	AvgRating     float64 `json:"avg_rating"`
	TotalInstalls int64   `json:"total_installs"`
	FreeRatio     float64 `json:"free_ratio"`
	AvgPolarity   float64 `json:"avg_polarity"`
}

// FilterOptions lists the values a presentation layer can offer as filter
// choices.
type FilterOptions struct {
	Categories     []string        `json:"categories"`
	ContentRatings []ContentRating `json:"content_ratings"`
	AppTypes       []AppType       `json:"app_types"`
	Sentiments     []Sentiment     `json:"sentiments"`
	MaxInstalls    int64           `json:"max_installs"`
}

// InsightReport holds the computed analytics printed to the console.
type InsightReport struct {
	Summary            Summary
	Dropped            int
	TopCategories      []ChartPoint
	TopInstalled       []*App
	TopRated           []*App
	Sentiments         []ChartPoint
	RatingDistribution []ChartPoint
	Rollups            []CategoryRollup
}
