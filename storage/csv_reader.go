package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"playstore-insights/models"
	"playstore-insights/utils"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// CSVSource reads both datasets from CSV files or http(s) URLs. Columns are
// mapped by header name, so column order does not matter.
type CSVSource struct {
	appsLocation    string
	reviewsLocation string
	client          *http.Client
	retry           *utils.RetryConfig
}

// NewCSVSource creates a CSVSource. A nil client uses http.DefaultClient; a
// nil retry config tries each fetch once.
func NewCSVSource(appsLocation, reviewsLocation string, client *http.Client, retry *utils.RetryConfig) *CSVSource {
	if client == nil {
		client = http.DefaultClient
	}
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	return &CSVSource{
		appsLocation:    appsLocation,
		reviewsLocation: reviewsLocation,
		client:          client,
		retry:           retry,
	}
}

// FetchApps reads the app catalog.
func (s *CSVSource) FetchApps(ctx context.Context) ([]*models.RawApp, error) {
	t, err := s.readTable(ctx, s.appsLocation, ColApp, ColCategory, ColRating)
	if err != nil {
		return nil, fmt.Errorf("csv: apps: %w", err)
	}

	apps := make([]*models.RawApp, 0, len(t.rows))
	for _, row := range t.rows {
		apps = append(apps, &models.RawApp{
			App:            t.get(row, ColApp),
			Category:       t.get(row, ColCategory),
			Rating:         t.get(row, ColRating),
			Reviews:        t.get(row, ColReviews),
			Size:           t.get(row, ColSize),
			Installs:       t.get(row, ColInstalls),
			Type:           t.get(row, ColType),
			Price:          t.get(row, ColPrice),
			ContentRating:  t.get(row, ColContentRating),
			Genres:         t.get(row, ColGenres),
			LastUpdated:    t.get(row, ColLastUpdated),
			CurrentVersion: t.get(row, ColCurrentVersion),
			AndroidVersion: t.get(row, ColAndroidVersion),
		})
	}
	return apps, nil
}

// FetchReviews reads the review set.
func (s *CSVSource) FetchReviews(ctx context.Context) ([]*models.RawReview, error) {
	t, err := s.readTable(ctx, s.reviewsLocation, ColReviewApp, ColSentiment)
	if err != nil {
		return nil, fmt.Errorf("csv: reviews: %w", err)
	}

	reviews := make([]*models.RawReview, 0, len(t.rows))
	for _, row := range t.rows {
		text := t.get(row, ColReviewText)
		reviews = append(reviews, &models.RawReview{
			App:          t.get(row, ColReviewApp),
			Review:       text,
			HasReview:    text != "",
			Sentiment:    t.get(row, ColSentiment),
			Polarity:     t.get(row, ColPolarity),
			Subjectivity: t.get(row, ColSubjectivity),
		})
	}
	return reviews, nil
}

// Close is a no-op; every read opens and closes its own handle.
func (s *CSVSource) Close() error {
	return nil
}

type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[strings.ToLower(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *CSVSource) readTable(ctx context.Context, location string, required ...string) (*table, error) {
	var rc io.ReadCloser
	err := s.retry.Do(ctx, "open "+location, func() error {
		var openErr error
		rc, openErr = s.open(ctx, location)
		return openErr
	})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return parseTable(rc, required...)
}

func (s *CSVSource) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !isURL(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open file %q: %w", location, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %q: unexpected status %s", location, resp.Status)
	}
	return resp.Body, nil
}

func isURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// parseTable reads a header row followed by data rows. Blank lines and rows
// whose fields are all empty are skipped.
func parseTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := t.index[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blank(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
