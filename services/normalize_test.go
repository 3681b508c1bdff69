package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"playstore-insights/models"
)

func TestParseInstallCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"10,000,000+", 10000000},
		{"1,000+", 1000},
		{"0", 0},
		{"", 0},
		{"Free", 0},
		{"  500+ ", 500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInstallCount(tt.raw), "ParseInstallCount(%q)", tt.raw)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"19M", 19.0},
		{"Varies with device", 0},
		{"", 0},
		{"8.5k", 0.0085},
		{"1.5G", 1500},
		{"12", 12},
		{"1,000+", 0},
		{"abcM", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseSize(tt.raw), 1e-12, "ParseSize(%q)", tt.raw)
	}
}

func TestFormatInstallCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1500000, "1.5M"},
		{999, "999"},
		{1000, "1.0K"},
		{1000000000, "1.0B"},
		{0, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatInstallCount(tt.n))
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "19.0MB", FormatSize(19))
	assert.Equal(t, "1.0GB", FormatSize(1000))
	assert.Equal(t, "0.0MB", FormatSize(0))
}

func TestParseUpdateDate(t *testing.T) {
	got, ok := ParseUpdateDate("January 7, 2018")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2018, time.January, 7, 0, 0, 0, 0, time.UTC), got)

	for _, raw := range []string{"", "Smarch 7, 2018", "January x, 2018", "January 7, year", "1.0.19"} {
		_, ok := ParseUpdateDate(raw)
		assert.False(t, ok, "ParseUpdateDate(%q)", raw)
	}
}

func TestParseRatingCoercion(t *testing.T) {
	assert.Equal(t, 4.1, ParseRating("4.1"))
	assert.Equal(t, 0.0, ParseRating("NaN"))
	assert.Equal(t, 0.0, ParseRating("nan"))
	assert.Equal(t, 0.0, ParseRating("Inf"))
	assert.Equal(t, 0.0, ParseRating("new"))
	assert.Equal(t, 0.0, ParseRating(""))
}

func TestParseReviewCount(t *testing.T) {
	assert.Equal(t, int64(2376564), ParseReviewCount("2,376,564"))
	assert.Equal(t, int64(159), ParseReviewCount("159"))
	assert.Equal(t, int64(0), ParseReviewCount("3.0M"))
	assert.Equal(t, int64(0), ParseReviewCount("NaN"))
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 4.99, ParsePrice("$4.99"))
	assert.Equal(t, 0.0, ParsePrice("0"))
	assert.Equal(t, 0.0, ParsePrice("Everyone"))
}

func TestParseEnums(t *testing.T) {
	assert.Equal(t, models.AppTypePaid, ParseAppType("Paid", 0))
	assert.Equal(t, models.AppTypeFree, ParseAppType("free", 0))
	assert.Equal(t, models.AppTypePaid, ParseAppType("NaN", 2.99))
	assert.Equal(t, models.AppTypeFree, ParseAppType("0", 0))

	s, ok := ParseSentiment("negative")
	assert.True(t, ok)
	assert.Equal(t, models.SentimentNegative, s)
	_, ok = ParseSentiment("nan")
	assert.False(t, ok)

	assert.Equal(t, models.ContentRatingTeen, ParseContentRating("Teen"))
	assert.Equal(t, models.ContentRatingUnknown, ParseContentRating(""))
	assert.Equal(t, models.ContentRatingUnknown, ParseContentRating("Kids"))
}
