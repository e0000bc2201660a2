package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func profile(id string, status prospects.Status, at time.Time) *prospects.Profile {
	return &prospects.Profile{
		ID:          prospects.ProfileID(id),
		TargetName:  "Target " + id,
		CompanyName: "Company " + id,
		Status:      status,
		GeneratedAt: at,
	}
}

func TestAggregate_Empty(t *testing.T) {
	report := Aggregate(nil, now)

	assert.Empty(t, report.TimeSeries)
	assert.Empty(t, report.StatusDistribution)
	assert.Equal(t, 0, report.Summary.Total)
	assert.Equal(t, "0", report.Summary.SuccessRate)
	assert.Equal(t, "0", report.Summary.AverageDailyProfiles)
	assert.Equal(t, 0, report.Summary.ActiveThisWeek)
}

func TestAggregate_Summary(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusCompleted, now),
		profile("2", prospects.StatusCompleted, now.AddDate(0, 0, -10)),
		profile("3", prospects.StatusPending, now.AddDate(0, 0, -1)),
	}

	report := Aggregate(profiles, now)

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 2, report.Summary.Completed)
	assert.Equal(t, 1, report.Summary.Pending)
	assert.Equal(t, 0, report.Summary.InProgress)
	assert.Equal(t, "66.7", report.Summary.SuccessRate)
	assert.Equal(t, "1.0", report.Summary.AverageDailyProfiles)
	// the 10-day-old record falls outside the 7-day activity window
	assert.Equal(t, 2, report.Summary.ActiveThisWeek)
}

func TestAggregate_TimeSeriesAscending(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusCompleted, now),
		profile("2", prospects.StatusCompleted, now.AddDate(0, 0, -10)),
		profile("3", prospects.StatusPending, now.AddDate(0, 0, -1)),
		profile("4", prospects.StatusInProgress, now.AddDate(0, 0, -1)),
	}

	report := Aggregate(profiles, now)

	require.Len(t, report.TimeSeries, 3)
	assert.Equal(t, "2026-03-05", report.TimeSeries[0].Date)
	assert.Equal(t, "2026-03-14", report.TimeSeries[1].Date)
	assert.Equal(t, "2026-03-15", report.TimeSeries[2].Date)

	mid := report.TimeSeries[1]
	assert.Equal(t, 2, mid.Total)
	assert.Equal(t, 1, mid.Pending)
	assert.Equal(t, 1, mid.InProgress)
	assert.Equal(t, 0, mid.Completed)
}

func TestAggregate_UnknownBucket(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusCompleted, now),
		profile("2", prospects.StatusPending, time.Time{}),
	}

	report := Aggregate(profiles, now)

	require.Len(t, report.TimeSeries, 2)
	// "Unknown" sorts after ISO date keys
	assert.Equal(t, UnknownBucket, report.TimeSeries[1].Date)
	assert.Equal(t, 1, report.TimeSeries[1].Pending)
	// zero timestamp never counts as weekly activity
	assert.Equal(t, 1, report.Summary.ActiveThisWeek)
}

func TestAggregate_FailedSummaryOnly(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusFailed, now),
		profile("2", prospects.StatusCompleted, now),
	}

	report := Aggregate(profiles, now)

	require.Len(t, report.TimeSeries, 1)
	bucket := report.TimeSeries[0]
	// failed records count toward the bucket total but have no per-bucket column
	assert.Equal(t, 2, bucket.Total)
	assert.Equal(t, 1, bucket.Completed)
	assert.Equal(t, 0, bucket.Pending)
	assert.Equal(t, 0, bucket.InProgress)

	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, "50.0", report.Summary.SuccessRate)
}

func TestAggregate_StatusDistributionCanonicalOrder(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusPending, now),
		profile("2", prospects.StatusFailed, now),
		profile("3", prospects.StatusCompleted, now),
		profile("4", prospects.StatusInProgress, now),
		profile("5", prospects.StatusCompleted, now),
	}

	report := Aggregate(profiles, now)

	require.Len(t, report.StatusDistribution, 4)
	assert.Equal(t, []StatusCount{
		{Name: "Completed", Value: 2},
		{Name: "In Progress", Value: 1},
		{Name: "Pending", Value: 1},
		{Name: "Failed", Value: 1},
	}, report.StatusDistribution)
}

func TestAggregate_UnrecognizedStatusAppended(t *testing.T) {
	profiles := []*prospects.Profile{
		profile("1", prospects.StatusCompleted, now),
		profile("2", prospects.Status("Archived"), now),
	}

	report := Aggregate(profiles, now)

	require.Len(t, report.StatusDistribution, 2)
	assert.Equal(t, "Completed", report.StatusDistribution[0].Name)
	assert.Equal(t, "Archived", report.StatusDistribution[1].Name)
}
