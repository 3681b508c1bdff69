package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"playstore-insights/models"
	"playstore-insights/utils"
)

// Driver names registered by the imports above.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var appColumns = []string{
	"app", "category", "rating", "reviews", "size", "installs", "type",
	"price", "content_rating", "genres", "last_updated", "current_ver", "android_ver",
}

var reviewColumns = []string{
	"app", "translated_review", "sentiment", "sentiment_polarity", "sentiment_subjectivity",
}

// SQLSource reads both datasets from two tables whose columns are the
// snake_case forms of the CSV headers. It never writes.
type SQLSource struct {
	db           *sql.DB
	appsTable    string
	reviewsTable string
}

// NewSQLSource opens driver/dsn and pings it through retry before returning.
func NewSQLSource(ctx context.Context, driver, dsn, appsTable, reviewsTable string, retry *utils.RetryConfig) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", driver, err)
	}
	return newSQLSourceFromDB(ctx, db, driver, appsTable, reviewsTable, retry)
}

func newSQLSourceFromDB(ctx context.Context, db *sql.DB, driver, appsTable, reviewsTable string, retry *utils.RetryConfig) (*SQLSource, error) {
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do(ctx, driver+" ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", driver, err)
	}
	return &SQLSource{db: db, appsTable: appsTable, reviewsTable: reviewsTable}, nil
}

// FetchApps reads every row of the apps table.
func (s *SQLSource) FetchApps(ctx context.Context) ([]*models.RawApp, error) {
	rows, err := s.db.QueryContext(ctx, selectAll(s.appsTable, appColumns))
	if err != nil {
		return nil, fmt.Errorf("sql: fetch apps: %w", err)
	}
	defer rows.Close()

	var apps []*models.RawApp
	for rows.Next() {
		var f [13]sql.NullString
		if err := rows.Scan(&f[0], &f[1], &f[2], &f[3], &f[4], &f[5], &f[6],
			&f[7], &f[8], &f[9], &f[10], &f[11], &f[12]); err != nil {
			return nil, fmt.Errorf("sql: scan app row: %w", err)
		}
		apps = append(apps, &models.RawApp{
			App:            f[0].String,
			Category:       f[1].String,
			Rating:         f[2].String,
			Reviews:        f[3].String,
			Size:           f[4].String,
			Installs:       f[5].String,
			Type:           f[6].String,
			Price:          f[7].String,
			ContentRating:  f[8].String,
			Genres:         f[9].String,
			LastUpdated:    f[10].String,
			CurrentVersion: f[11].String,
			AndroidVersion: f[12].String,
		})
	}
	return apps, rows.Err()
}

// FetchReviews reads every row of the reviews table.
func (s *SQLSource) FetchReviews(ctx context.Context) ([]*models.RawReview, error) {
	rows, err := s.db.QueryContext(ctx, selectAll(s.reviewsTable, reviewColumns))
	if err != nil {
		return nil, fmt.Errorf("sql: fetch reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.RawReview
	for rows.Next() {
		var app, text, sentiment, polarity, subjectivity sql.NullString
		if err := rows.Scan(&app, &text, &sentiment, &polarity, &subjectivity); err != nil {
			return nil, fmt.Errorf("sql: scan review row: %w", err)
		}
		reviews = append(reviews, &models.RawReview{
			App:          app.String,
			Review:       text.String,
			HasReview:    text.Valid,
			Sentiment:    sentiment.String,
			Polarity:     polarity.String,
			Subjectivity: subjectivity.String,
		})
	}
	return reviews, rows.Err()
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func selectAll(table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(table))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
