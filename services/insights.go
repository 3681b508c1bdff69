package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"playstore-insights/models"
	"playstore-insights/utils"
)

const reportTopN = 5

type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

// WithOutput redirects Print.
func (s *InsightService) WithOutput(w io.Writer) *InsightService {
	s.out = w
	return s
}

// Generate builds the console report from one filtered snapshot.
func (s *InsightService) Generate(snap Snapshot, dropped int) *models.InsightReport {
	categories := CategoryDistribution(snap.Apps)
	if len(categories) > reportTopN {
		categories = categories[:reportTopN]
	}

	report := &models.InsightReport{
		Summary:            Summarize(snap.Apps, snap.Reviews),
		Dropped:            dropped,
		TopCategories:      categories,
		TopInstalled:       TopApps(snap.Apps, SortByInstalls, reportTopN),
		TopRated:           TopApps(snap.Apps, SortByRating, reportTopN),
		Sentiments:         SentimentDistribution(snap.Reviews),
		RatingDistribution: RatingDistribution(snap.Apps),
		Rollups:            CategoryRollups(snap.Apps),
	}

	s.logger.Debug("[insights] Report built over %d apps and %d reviews",
		report.Summary.TotalApps, report.Summary.TotalReviews)
	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	p := message.NewPrinter(language.English)
	w := s.out
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 PLAY STORE INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	sum := r.Summary
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	p.Fprintf(w, "  Apps           : \033[1m%d\033[0m\n", sum.TotalApps)
	p.Fprintf(w, "  Reviews        : \033[1m%d\033[0m\n", sum.TotalReviews)
	p.Fprintf(w, "  Rows dropped   : \033[1m%d\033[0m\n", r.Dropped)
	p.Fprintf(w, "  Total installs : \033[1m%d\033[0m (%s)\n", sum.TotalInstalls, FormatInstallCount(sum.TotalInstalls))
	fmt.Fprintf(w, "  Average rating : \033[1;32m%s\033[0m\n", orNA(sum.RatedApps, fmt.Sprintf("%.2f ★", sum.AvgRating)))
	fmt.Fprintf(w, "  Free apps      : \033[1m%s\033[0m\n", orNA(sum.TotalApps, fmt.Sprintf("%.1f%%", sum.FreeRatio*100)))
	fmt.Fprintf(w, "  Avg polarity   : \033[1m%s\033[0m\n", orNA(sum.TotalReviews, fmt.Sprintf("%+.3f", sum.AvgPolarity)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d Categories\033[0m\n", reportTopN)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopCategories) == 0 {
		fmt.Fprintf(w, "  No apps match the current filters\n")
	}
	for _, c := range r.TopCategories {
		p.Fprintf(w, "  %-30s %d\n", truncate(c.Name, 28), c.Value)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Most Installed\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	printApps(w, r.TopInstalled, func(a *models.App) string { return FormatInstallCount(a.InstallCount) })
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top %d Highest Rated\033[0m\n", reportTopN)
	fmt.Fprintf(w, "  %s\n", thin)
	printApps(w, r.TopRated, func(a *models.App) string { return fmt.Sprintf("%.1f ★", a.Rating) })
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Rating Distribution\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	printBars(w, p, r.RatingDistribution)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Review Sentiment\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	printBars(w, p, r.Sentiments)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func printApps(w io.Writer, apps []*models.App, value func(*models.App) string) {
	if len(apps) == 0 {
		fmt.Fprintf(w, "  N/A\n")
		return
	}
	for i, a := range apps {
		fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%s\033[0m\n", i+1, truncate(a.Name, 38), value(a))
	}
}

// printBars scales bars to at most 30 cells so large datasets stay readable.
func printBars(w io.Writer, p *message.Printer, points []models.ChartPoint) {
	max := 0
	for _, pt := range points {
		if pt.Value > max {
			max = pt.Value
		}
	}
	for _, pt := range points {
		cells := 0
		if max > 0 {
			cells = pt.Value * 30 / max
		}
		p.Fprintf(w, "  %-10s %s (%d)\n", pt.Name, strings.Repeat("█", cells), pt.Value)
	}
}

func orNA(n int, s string) string {
	if n == 0 {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
