package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"playstore-insights/models"
)

// VariesWithDevice is the literal the store uses for sizes and versions that
// differ per device.
const VariesWithDevice = "Varies with device"

const updateDateLayout = "January 2, 2006"

// ParseInstallCount converts "10,000,000+" into 10000000. Anything that does
// not parse yields 0.
func ParseInstallCount(raw string) int64 {
	s := strings.NewReplacer("+", "", ",", "").Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseSize converts a store size such as "19M", "8.5k" or "1.2G" into
// megabytes. "Varies with device", empty and malformed input yield 0. A bare
// number is returned unchanged.
func ParseSize(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, VariesWithDevice) {
		return 0
	}

	factor := 1.0
	switch s[len(s)-1] {
	case 'M', 'm':
		s = s[:len(s)-1]
	case 'k', 'K':
		factor = 1.0 / 1000
		s = s[:len(s)-1]
	case 'G', 'g':
		factor = 1000
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || !finite(v) || v < 0 {
		return 0
	}
	return v * factor
}

// FormatInstallCount renders n with a B/M/K suffix and one decimal.
func FormatInstallCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatSize renders a size in megabytes as MB, or GB from 1000MB up.
func FormatSize(mb float64) string {
	if mb >= 1000 {
		return fmt.Sprintf("%.1fGB", mb/1000)
	}
	return fmt.Sprintf("%.1fMB", mb)
}

// ParseUpdateDate parses "January 7, 2018". ok is false when the month is not
// recognised or day and year are not numeric.
func ParseUpdateDate(raw string) (t time.Time, ok bool) {
	t, err := time.Parse(updateDateLayout, strings.Join(strings.Fields(raw), " "))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseRating coerces a rating. Non-numeric input, "NaN" and infinities
// become 0, which is also the "no rating" sentinel.
func ParseRating(raw string) float64 {
	return parseFloatOrZero(raw)
}

// ParseReviewCount coerces a review count that may carry thousands
// separators. Anything else becomes 0.
func ParseReviewCount(raw string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || !finite(f) || f < 0 {
		return 0
	}
	return int64(f)
}

// ParseSentimentScore coerces a polarity or subjectivity score.
func ParseSentimentScore(raw string) float64 {
	return parseFloatOrZero(raw)
}

// ParsePrice converts "$4.99" into 4.99. Free and malformed prices yield 0.
func ParsePrice(raw string) float64 {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	v := parseFloatOrZero(s)
	if v < 0 {
		return 0
	}
	return v
}

// ParseAppType maps the raw type column onto AppType. Values other than
// "Free" and "Paid" are decided by the price.
func ParseAppType(raw string, price float64) models.AppType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free":
		return models.AppTypeFree
	case "paid":
		return models.AppTypePaid
	}
	if price > 0 {
		return models.AppTypePaid
	}
	return models.AppTypeFree
}

// ParseSentiment maps a raw label onto Sentiment. ok is false for anything
// that is not one of the three labels.
func ParseSentiment(raw string) (models.Sentiment, bool) {
	s := strings.TrimSpace(raw)
	for _, known := range models.Sentiments {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// ParseContentRating maps a raw content rating onto ContentRating. Missing
// and unrecognised values become ContentRatingUnknown.
func ParseContentRating(raw string) models.ContentRating {
	s := strings.TrimSpace(raw)
	for _, known := range models.ContentRatings {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return models.ContentRatingUnknown
}

func parseFloatOrZero(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || !finite(f) {
		return 0
	}
	return f
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
