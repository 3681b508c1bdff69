package services

import (
	"math"
	"sort"

	"playstore-insights/models"
)

// CorrelationSampleCap bounds every scatter view. The cap truncates the
// filtered sequence in order; it is not a random sample.
const CorrelationSampleCap = 500

// AndroidVersionLimit is how many Android versions the distribution keeps.
const AndroidVersionLimit = 15

const unknownLabel = "Unknown"

// SortField names the numeric field TopApps ranks by.
type SortField string

const (
	SortByInstalls SortField = "installs"
	SortByRating   SortField = "rating"
	SortByReviews  SortField = "reviews"
	SortBySize     SortField = "size"
	SortByPrice    SortField = "price"
)

// SortFields lists every supported SortField.
var SortFields = []SortField{SortByInstalls, SortByRating, SortByReviews, SortBySize, SortByPrice}

type numBin struct {
	label    string
	min, max float64
}

var ratingBins = []numBin{
	{"1.0-1.5", 1.0, 1.5},
	{"1.5-2.0", 1.5, 2.0},
	{"2.0-2.5", 2.0, 2.5},
	{"2.5-3.0", 2.5, 3.0},
	{"3.0-3.5", 3.0, 3.5},
	{"3.5-4.0", 3.5, 4.0},
	{"4.0-4.5", 4.0, 4.5},
	{"4.5-5.0", 4.5, 5.0},
}

var installBins = []numBin{
	{"0-1K", 0, 1e3},
	{"1K-10K", 1e3, 1e4},
	{"10K-100K", 1e4, 1e5},
	{"100K-1M", 1e5, 1e6},
	{"1M-10M", 1e6, 1e7},
	{"10M-100M", 1e7, 1e8},
	{"100M+", 1e8, math.Inf(1)},
}

var sizeBins = []numBin{
	{"<10MB", 0, 10},
	{"10-25MB", 10, 25},
	{"25-50MB", 25, 50},
	{"50-100MB", 50, 100},
	{"100MB+", 100, math.Inf(1)},
}

// binIndex returns the half-open bin holding v, or -1. When lastInclusive is
// set the final bin also accepts its upper bound.
func binIndex(bins []numBin, v float64, lastInclusive bool) int {
	for i, b := range bins {
		if v >= b.min && v < b.max {
			return i
		}
		if lastInclusive && i == len(bins)-1 && v == b.max {
			return i
		}
	}
	return -1
}

func binPoints(bins []numBin, counts []int) []models.ChartPoint {
	out := make([]models.ChartPoint, len(bins))
	for i, b := range bins {
		out[i] = models.ChartPoint{Name: b.label, Value: counts[i]}
	}
	return out
}

// countBy tallies keys and returns them by descending count; ties keep the
// order in which keys were first seen.
func countBy[T any](items []T, key func(T) string) []models.ChartPoint {
	index := make(map[string]int)
	var out []models.ChartPoint
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.ChartPoint{Name: k})
		}
		out[i].Value++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if out == nil {
		out = []models.ChartPoint{}
	}
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// CategoryDistribution counts apps per category.
func CategoryDistribution(apps []*models.App) []models.ChartPoint {
	return countBy(apps, func(a *models.App) string { return a.Category })
}

// RatingDistribution buckets rated apps into eight 0.5-wide bins over
// [1.0, 5.0]. The last bin is closed so 5.0 ratings are counted; unrated
// apps (0) fall in no bin.
func RatingDistribution(apps []*models.App) []models.ChartPoint {
	counts := make([]int, len(ratingBins))
	for _, a := range apps {
		if i := binIndex(ratingBins, a.Rating, true); i >= 0 {
			counts[i]++
		}
	}
	return binPoints(ratingBins, counts)
}

// InstallsDistribution buckets apps by parsed install count.
func InstallsDistribution(apps []*models.App) []models.ChartPoint {
	counts := make([]int, len(installBins))
	for _, a := range apps {
		if i := binIndex(installBins, float64(a.InstallCount), false); i >= 0 {
			counts[i]++
		}
	}
	return binPoints(installBins, counts)
}

// SizeDistribution buckets apps by size. Apps without a known size are
// reported in a trailing "Varies with device" bucket.
func SizeDistribution(apps []*models.App) []models.ChartPoint {
	counts := make([]int, len(sizeBins))
	varies := 0
	for _, a := range apps {
		if a.SizeMB <= 0 {
			varies++
			continue
		}
		if i := binIndex(sizeBins, a.SizeMB, false); i >= 0 {
			counts[i]++
		}
	}
	return append(binPoints(sizeBins, counts), models.ChartPoint{Name: VariesWithDevice, Value: varies})
}

// SentimentDistribution counts reviews per label, always listing all three
// labels in display order.
func SentimentDistribution(reviews []*models.Review) []models.ChartPoint {
	counts := make(map[models.Sentiment]int, len(models.Sentiments))
	for _, r := range reviews {
		counts[r.Sentiment]++
	}
	out := make([]models.ChartPoint, len(models.Sentiments))
	for i, s := range models.Sentiments {
		out[i] = models.ChartPoint{Name: string(s), Value: counts[s]}
	}
	return out
}

// ContentRatingDistribution counts apps per content rating.
func ContentRatingDistribution(apps []*models.App) []models.ChartPoint {
	return countBy(apps, func(a *models.App) string {
		if a.ContentRating == "" {
			return string(models.ContentRatingUnknown)
		}
		return string(a.ContentRating)
	})
}

// AndroidVersionDistribution counts apps per minimum Android version and
// keeps the 15 largest.
func AndroidVersionDistribution(apps []*models.App) []models.ChartPoint {
	out := countBy(apps, func(a *models.App) string {
		if a.AndroidVersion == "" {
			return unknownLabel
		}
		return a.AndroidVersion
	})
	if len(out) > AndroidVersionLimit {
		out = out[:AndroidVersionLimit]
	}
	return out
}

// TypeDistribution counts free and paid apps.
func TypeDistribution(apps []*models.App) []models.ChartPoint {
	counts := make(map[models.AppType]int, len(models.AppTypes))
	for _, a := range apps {
		counts[a.Type]++
	}
	out := make([]models.ChartPoint, len(models.AppTypes))
	for i, t := range models.AppTypes {
		out[i] = models.ChartPoint{Name: string(t), Value: counts[t]}
	}
	return out
}

// FieldValue returns the numeric interpretation of field for a, and false
// when the app has no usable value for it.
func FieldValue(a *models.App, field SortField) (float64, bool) {
	var v float64
	switch field {
	case SortByInstalls:
		v = float64(a.InstallCount)
	case SortByRating:
		v = a.Rating
	case SortByReviews:
		v = float64(a.Reviews)
	case SortBySize:
		v = a.SizeMB
	case SortByPrice:
		v = a.PriceUSD
	default:
		return 0, false
	}
	return v, v > 0 && finite(v)
}

// TopApps returns at most n apps ordered by field, highest first. Apps
// lacking the field are left out; ties keep input order.
func TopApps(apps []*models.App, field SortField, n int) []*models.App {
	type ranked struct {
		app *models.App
		v   float64
	}
	rs := make([]ranked, 0, len(apps))
	for _, a := range apps {
		if v, ok := FieldValue(a, field); ok {
			rs = append(rs, ranked{a, v})
		}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].v > rs[j].v })

	if n < 0 {
		n = 0
	}
	if len(rs) > n {
		rs = rs[:n]
	}
	out := make([]*models.App, len(rs))
	for i, r := range rs {
		out[i] = r.app
	}
	return out
}

// CategoryRollups groups apps by category. Rows are ordered like
// CategoryDistribution. The mean rating covers rated apps only.
func CategoryRollups(apps []*models.App) []models.CategoryRollup {
	type acc struct {
		count, rated, free int
		ratingSum          float64
		installs           int64
	}
	accs := make(map[string]*acc)
	for _, a := range apps {
		g, ok := accs[a.Category]
		if !ok {
			g = &acc{}
			accs[a.Category] = g
		}
		g.count++
		g.installs += a.InstallCount
		if a.Rating > 0 {
			g.rated++
			g.ratingSum += a.Rating
		}
		if a.IsFree() {
			g.free++
		}
	}

	order := CategoryDistribution(apps)
	out := make([]models.CategoryRollup, 0, len(order))
	for _, p := range order {
		g := accs[p.Name]
		out = append(out, models.CategoryRollup{
			Category:      p.Name,
			Count:         g.count,
			AvgRating:     ratio(g.ratingSum, float64(g.rated)),
			TotalInstalls: g.installs,
			FreeRatio:     ratio(float64(g.free), float64(g.count)),
		})
	}
	return out
}

// CategorySentiment breaks the reviews down by the category of their app.
// Reviews whose app is not in apps are ignored.
func CategorySentiment(reviews []*models.Review, apps []*models.App) []models.CategorySentiment {
	categoryOf := make(map[string]string, len(apps))
	for _, a := range apps {
		if _, ok := categoryOf[a.Name]; !ok {
			categoryOf[a.Name] = a.Category
		}
	}

	index := make(map[string]int)
	var out []models.CategorySentiment
	sums := []float64{}
	for _, r := range reviews {
		cat, ok := categoryOf[r.AppName]
		if !ok {
			continue
		}
		i, seen := index[cat]
		if !seen {
			i = len(out)
			index[cat] = i
			out = append(out, models.CategorySentiment{Category: cat})
			sums = append(sums, 0)
		}
		switch r.Sentiment {
		case models.SentimentPositive:
			out[i].Positive++
		case models.SentimentNeutral:
			out[i].Neutral++
		case models.SentimentNegative:
			out[i].Negative++
		}
		sums[i] += r.Polarity
	}

	for i := range out {
		total := out[i].Positive + out[i].Neutral + out[i].Negative
		out[i].AvgPolarity = ratio(sums[i], float64(total))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Positive+out[i].Neutral+out[i].Negative > out[j].Positive+out[j].Neutral+out[j].Negative
	})
	if out == nil {
		out = []models.CategorySentiment{}
	}
	return out
}

func appPairs(apps []*models.App, x, y func(*models.App) float64) []models.CorrelationPoint {
	out := make([]models.CorrelationPoint, 0)
	for _, a := range apps {
		if len(out) >= CorrelationSampleCap {
			break
		}
		xv, yv := x(a), y(a)
		if xv == 0 || yv == 0 || !finite(xv) || !finite(yv) {
			continue
		}
		out = append(out, models.CorrelationPoint{Label: a.Name, X: xv, Y: yv})
	}
	return out
}

func installsOf(a *models.App) float64 { return float64(a.InstallCount) }
func reviewsOf(a *models.App) float64  { return float64(a.Reviews) }
func sizeOf(a *models.App) float64     { return a.SizeMB }
func ratingOf(a *models.App) float64   { return a.Rating }

// InstallsVsRating pairs install counts (X) with ratings (Y).
func InstallsVsRating(apps []*models.App) []models.CorrelationPoint {
	return appPairs(apps, installsOf, ratingOf)
}

// ReviewsVsRating pairs review counts (X) with ratings (Y).
func ReviewsVsRating(apps []*models.App) []models.CorrelationPoint {
	return appPairs(apps, reviewsOf, ratingOf)
}

// SizeVsRating pairs sizes in MB (X) with ratings (Y).
func SizeVsRating(apps []*models.App) []models.CorrelationPoint {
	return appPairs(apps, sizeOf, ratingOf)
}

// PolarityVsSubjectivity pairs review polarity (X) with subjectivity (Y).
// Neutral scores of exactly 0 are legitimate here, so only non-finite
// values are skipped.
func PolarityVsSubjectivity(reviews []*models.Review) []models.CorrelationPoint {
	out := make([]models.CorrelationPoint, 0)
	for _, r := range reviews {
		if len(out) >= CorrelationSampleCap {
			break
		}
		if !finite(r.Polarity) || !finite(r.Subjectivity) {
			continue
		}
		out = append(out, models.CorrelationPoint{Label: r.AppName, X: r.Polarity, Y: r.Subjectivity})
	}
	return out
}

// Summarize computes the headline numbers for a filtered pair.
func Summarize(apps []*models.App, reviews []*models.Review) models.Summary {
	s := models.Summary{TotalApps: len(apps), TotalReviews: len(reviews)}

	var ratingSum, polaritySum float64
	free := 0
	for _, a := range apps {
		s.TotalInstalls += a.InstallCount
		if a.Rating > 0 {
			s.RatedApps++
			ratingSum += a.Rating
		}
		if a.IsFree() {
			free++
		}
	}
	for _, r := range reviews {
		polaritySum += r.Polarity
	}

	s.AvgRating = ratio(ratingSum, float64(s.RatedApps))
	s.FreeRatio = ratio(float64(free), float64(len(apps)))
	s.AvgPolarity = ratio(polaritySum, float64(len(reviews)))
	return s
}

// BuildFilterOptions lists the distinct filterable values present in apps.
// Categories are sorted alphabetically.
func BuildFilterOptions(apps []*models.App) models.FilterOptions {
	seenCat := make(map[string]bool)
	seenRating := make(map[models.ContentRating]bool)
	opts := models.FilterOptions{
		Categories:     []string{},
		ContentRatings: []models.ContentRating{},
		AppTypes:       append([]models.AppType{}, models.AppTypes...),
		Sentiments:     append([]models.Sentiment{}, models.Sentiments...),
	}
	for _, a := range apps {
		if !seenCat[a.Category] {
			seenCat[a.Category] = true
			opts.Categories = append(opts.Categories, a.Category)
		}
		seenRating[a.ContentRating] = true
		if a.InstallCount > opts.MaxInstalls {
			opts.MaxInstalls = a.InstallCount
		}
	}
	sort.Strings(opts.Categories)
	for _, cr := range models.ContentRatings {
		if seenRating[cr] {
			opts.ContentRatings = append(opts.ContentRatings, cr)
		}
	}
	return opts
}
