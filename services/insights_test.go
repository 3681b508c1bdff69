package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playstore-insights/models"
)

func sampleSnapshot() Snapshot {
	return fixedEngine().Derive(sampleApps(), sampleReviews(), models.DefaultCriteria())
}

func TestInsightCounts(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleSnapshot(), 3)

	assert.Equal(t, 5, r.Summary.TotalApps)
	assert.Equal(t, 4, r.Summary.TotalReviews, "orphan review is joined away")
	assert.Equal(t, 3, r.Dropped)
}

func TestInsightTopLists(t *testing.T) {
	r := NewInsightService(newTestLogger()).Generate(sampleSnapshot(), 0)

	require.NotEmpty(t, r.TopInstalled)
	assert.Equal(t, "Gamma", r.TopInstalled[0].Name)
	require.NotEmpty(t, r.TopRated)
	assert.Equal(t, 5.0, r.TopRated[0].Rating)
	assert.Len(t, r.TopCategories, 3)
}

func TestInsightPrint(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(newTestLogger()).WithOutput(&buf)

	svc.Print(svc.Generate(sampleSnapshot(), 0))

	out := buf.String()
	assert.Contains(t, out, "PLAY STORE INSIGHTS")
	assert.Contains(t, out, "10,501,150")
	assert.Contains(t, out, "Gamma")
}

func TestInsightEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	svc := NewInsightService(newTestLogger()).WithOutput(&buf)

	r := svc.Generate(Snapshot{}, 0)
	assert.Equal(t, 0, r.Summary.TotalApps)

	svc.Print(r)
	assert.Contains(t, buf.String(), "N/A")
	assert.NotContains(t, buf.String(), "NaN")
}
