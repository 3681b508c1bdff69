package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-insights/models"
)

func sum(points []models.ChartPoint) int {
	total := 0
	for _, p := range points {
		total += p.Value
	}
	return total
}

func TestCategoryDistributionOrder(t *testing.T) {
	apps := []*models.App{
		app("a", "TOOLS", 4, "", models.AppTypeFree),
		app("b", "GAME", 4, "", models.AppTypeFree),
		app("c", "GAME", 4, "", models.AppTypeFree),
		app("d", "ART", 4, "", models.AppTypeFree),
		app("e", "TOOLS", 4, "", models.AppTypeFree),
		app("f", "BOOKS", 4, "", models.AppTypeFree),
	}

	got := CategoryDistribution(apps)
	assert.Equal(t, []models.ChartPoint{
		{Name: "TOOLS", Value: 2},
		{Name: "GAME", Value: 2},
		{Name: "ART", Value: 1},
		{Name: "BOOKS", Value: 1},
	}, got)
}

func TestRatingDistribution(t *testing.T) {
	apps := sampleApps()
	got := RatingDistribution(apps)

	require.Len(t, got, 8)
	assert.Equal(t, "1.0-1.5", got[0].Name)
	assert.Equal(t, 1, got[2].Value, "2.0 lands in 2.0-2.5")
	assert.Equal(t, 3, got[7].Value, "4.5, 4.9 and 5.0 land in the closed last bin")

	rated := 0
	for _, a := range apps {
		if a.Rating >= 1 && a.Rating <= 5 {
			rated++
		}
	}
	assert.Equal(t, rated, sum(got), "unrated apps fall in no bin")
}

func TestRatingDistributionBinEdges(t *testing.T) {
	for _, tt := range []struct {
		rating float64
		bin    int
	}{
		{1.0, 0}, {1.49, 0}, {1.5, 1}, {3.99, 5}, {4.0, 6}, {4.5, 7}, {5.0, 7},
	} {
		got := RatingDistribution([]*models.App{app("x", "C", tt.rating, "", models.AppTypeFree)})
		assert.Equal(t, 1, got[tt.bin].Value, "rating %.2f", tt.rating)
	}
}

func TestInstallsDistribution(t *testing.T) {
	apps := []*models.App{
		app("a", "C", 4, "0", models.AppTypeFree),
		app("b", "C", 4, "999+", models.AppTypeFree),
		app("c", "C", 4, "1,000+", models.AppTypeFree),
		app("d", "C", 4, "100,000,000+", models.AppTypeFree),
		app("e", "C", 4, "1,000,000,000+", models.AppTypeFree),
		app("f", "C", 4, "garbage", models.AppTypeFree),
	}

	got := InstallsDistribution(apps)
	require.Len(t, got, 7)
	assert.Equal(t, models.ChartPoint{Name: "0-1K", Value: 3}, got[0])
	assert.Equal(t, 1, got[1].Value)
	assert.Equal(t, models.ChartPoint{Name: "100M+", Value: 2}, got[6])
	assert.Equal(t, len(apps), sum(got))
}

func TestSizeDistribution(t *testing.T) {
	got := SizeDistribution(sampleApps())
	require.Len(t, got, 6)
	assert.Equal(t, []models.ChartPoint{
		{Name: "<10MB", Value: 1},
		{Name: "10-25MB", Value: 1},
		{Name: "25-50MB", Value: 1},
		{Name: "50-100MB", Value: 0},
		{Name: "100MB+", Value: 1},
		{Name: VariesWithDevice, Value: 1},
	}, got)
}

func TestSentimentDistribution(t *testing.T) {
	got := SentimentDistribution(sampleReviews())
	assert.Equal(t, []models.ChartPoint{
		{Name: "Positive", Value: 3},
		{Name: "Neutral", Value: 1},
		{Name: "Negative", Value: 1},
	}, got)
}

func TestContentRatingDistribution(t *testing.T) {
	apps := sampleApps()
	apps[0].ContentRating = ""

	got := ContentRatingDistribution(apps)
	assert.Equal(t, models.ChartPoint{Name: "Unknown", Value: 2}, got[0])
	assert.Equal(t, len(apps), sum(got))
}

func TestAndroidVersionDistributionTruncates(t *testing.T) {
	var apps []*models.App
	for i := 0; i < 20; i++ {
		a := app(fmt.Sprintf("app%d", i), "C", 4, "", models.AppTypeFree)
		a.AndroidVersion = fmt.Sprintf("%d.0 and up", i)
		apps = append(apps, a)
	}
	apps[19].AndroidVersion = "0.0 and up"

	got := AndroidVersionDistribution(apps)
	require.Len(t, got, AndroidVersionLimit)
	assert.Equal(t, models.ChartPoint{Name: "0.0 and up", Value: 2}, got[0])
}

func TestTypeDistribution(t *testing.T) {
	assert.Equal(t, []models.ChartPoint{
		{Name: "Free", Value: 3},
		{Name: "Paid", Value: 2},
	}, TypeDistribution(sampleApps()))
}

func TestTopApps(t *testing.T) {
	apps := sampleApps()

	assert.Equal(t, []string{"Gamma", "Epsilon", "Alpha"}, names(TopApps(apps, SortByInstalls, 3)))
	assert.Equal(t, []string{"Epsilon", "Gamma", "Alpha", "Beta"}, names(TopApps(apps, SortByRating, 10)),
		"unrated apps are excluded")
	assert.Equal(t, []string{"Epsilon", "Beta"}, names(TopApps(apps, SortByPrice, 10)))
	assert.Equal(t, []string{"Gamma"}, names(TopApps(apps, SortBySize, 1)))
	assert.Empty(t, TopApps(apps, SortByReviews, 0))
	assert.Empty(t, TopApps(apps, SortField("bogus"), 5))
}

func TestCategoryRollups(t *testing.T) {
	got := CategoryRollups(sampleApps())
	require.Len(t, got, 3)

	assert.Equal(t, "GAME", got[0].Category)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 3.25, got[0].AvgRating, 1e-9)
	assert.Equal(t, int64(1100), got[0].TotalInstalls)
	assert.InDelta(t, 0.5, got[0].FreeRatio, 1e-9)

	assert.Equal(t, "TOOLS", got[1].Category)
	assert.InDelta(t, 4.9, got[1].AvgRating, 1e-9, "unrated apps do not drag the mean down")
	assert.InDelta(t, 1.0, got[1].FreeRatio, 1e-9)
}

func TestCategoryRollupsEmptyAndSingle(t *testing.T) {
	assert.Equal(t, []models.CategoryRollup{}, CategoryRollups(nil))

	single := CategoryRollups([]*models.App{app("x", "C", 0, "", models.AppTypePaid)})
	require.Len(t, single, 1)
	assert.Equal(t, 0.0, single[0].FreeRatio)
	assert.Equal(t, 0.0, single[0].AvgRating)
	assert.False(t, math.IsNaN(single[0].AvgRating))
}

func TestCategorySentiment(t *testing.T) {
	got := CategorySentiment(sampleReviews(), sampleApps())
	require.Len(t, got, 2)

	assert.Equal(t, "GAME", got[0].Category)
	assert.Equal(t, 1, got[0].Positive)
	assert.Equal(t, 1, got[0].Neutral)
	assert.Equal(t, 1, got[0].Negative)
	assert.InDelta(t, (0.8-0.4+0)/3, got[0].AvgPolarity, 1e-9)

	assert.Equal(t, "TOOLS", got[1].Category)
}

func TestCorrelationSamples(t *testing.T) {
	apps := sampleApps()

	pairs := InstallsVsRating(apps)
	require.Len(t, pairs, 4, "Delta has no rating")
	assert.Equal(t, models.CorrelationPoint{Label: "Alpha", X: 1000, Y: 4.5}, pairs[0])

	assert.Len(t, ReviewsVsRating(apps), 4)
	assert.Len(t, SizeVsRating(apps), 3)
	assert.Len(t, PolarityVsSubjectivity(sampleReviews()), 5)
}

func TestCorrelationSampleCap(t *testing.T) {
	apps := make([]*models.App, 0, 800)
	for i := 0; i < 800; i++ {
		apps = append(apps, app(fmt.Sprintf("app%03d", i), "C", 4, "1,000+", models.AppTypeFree))
	}

	got := InstallsVsRating(apps)
	require.Len(t, got, CorrelationSampleCap)
	assert.Equal(t, "app000", got[0].Label)
	assert.Equal(t, "app499", got[len(got)-1].Label)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleApps(), sampleReviews())
	assert.Equal(t, 5, s.TotalApps)
	assert.Equal(t, 5, s.TotalReviews)
	assert.Equal(t, 4, s.RatedApps)
	assert.InDelta(t, (4.5+2.0+4.9+5.0)/4, s.AvgRating, 1e-9)
	assert.Equal(t, int64(1000+100+10000000+50+500000), s.TotalInstalls)
	assert.InDelta(t, 0.6, s.FreeRatio, 1e-9)
}

func TestBuildFilterOptions(t *testing.T) {
	opts := BuildFilterOptions(sampleApps())
	assert.Equal(t, []string{"ART_AND_DESIGN", "GAME", "TOOLS"}, opts.Categories)
	assert.Equal(t, []models.ContentRating{
		models.ContentRatingEveryone, models.ContentRatingEveryone10,
		models.ContentRatingTeen, models.ContentRatingUnknown,
	}, opts.ContentRatings)
	assert.Equal(t, int64(10000000), opts.MaxInstalls)
}

func TestAggregationsTolerateEmptyInput(t *testing.T) {
	assert.Equal(t, []models.ChartPoint{}, CategoryDistribution(nil))
	assert.Equal(t, 0, sum(RatingDistribution(nil)))
	assert.Equal(t, 0, sum(InstallsDistribution(nil)))
	assert.Equal(t, 0, sum(SizeDistribution(nil)))
	assert.Equal(t, 0, sum(SentimentDistribution(nil)))
	assert.Equal(t, []models.ChartPoint{}, ContentRatingDistribution(nil))
	assert.Equal(t, []models.ChartPoint{}, AndroidVersionDistribution(nil))
	assert.Empty(t, TopApps(nil, SortByInstalls, 10))
	assert.Equal(t, []models.CategorySentiment{}, CategorySentiment(nil, nil))
	assert.Empty(t, InstallsVsRating(nil))
	assert.Empty(t, PolarityVsSubjectivity(nil))

	s := Summarize(nil, nil)
	assert.Equal(t, models.Summary{}, s)
}

func TestAggregationsAreIdempotent(t *testing.T) {
	apps, reviews := sampleApps(), sampleReviews()

	assert.Equal(t, CategoryDistribution(apps), CategoryDistribution(apps))
	assert.Equal(t, RatingDistribution(apps), RatingDistribution(apps))
	assert.Equal(t, CategoryRollups(apps), CategoryRollups(apps))
	assert.Equal(t, TopApps(apps, SortByInstalls, 3), TopApps(apps, SortByInstalls, 3))
	assert.Equal(t, InstallsVsRating(apps), InstallsVsRating(apps))
	assert.Equal(t, Summarize(apps, reviews), Summarize(apps, reviews))
}
