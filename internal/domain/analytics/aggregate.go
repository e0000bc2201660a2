package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/patriot1176/private-eye-sales-prospect/internal/domain/prospects"
)

// DateBucket satu titik di time series (granularity: calendar date).
// Failed is tracked in the summary only, not per bucket.
type DateBucket struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Pending    int    `json:"pending"`
}

// StatusCount one slice of the status distribution
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary rekap keseluruhan
type Summary struct {
	Total                int    `json:"total"`
	Completed            int    `json:"completed"`
	InProgress           int    `json:"inProgress"`
	Pending              int    `json:"pending"`
	Failed               int    `json:"failed"`
	SuccessRate          string `json:"successRate"`
	AverageDailyProfiles string `json:"averageDailyProfiles"`
	ActiveThisWeek       int    `json:"activeThisWeek"`
}

// Report is the full analytics view over a record collection.
type Report struct {
	TimeSeries         []DateBucket  `json:"timeSeries"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
	Summary            Summary       `json:"summary"`
}

// UnknownBucket holds records whose GeneratedAt is missing (zero time).
const UnknownBucket = "Unknown"

// canonical order supaya distribusi deterministik, bukan first-encounter order
var statusOrder = []prospects.Status{
	prospects.StatusCompleted,
	prospects.StatusInProgress,
	prospects.StatusPending,
	prospects.StatusFailed,
}

// Aggregate buckets the full record collection by calendar date and status.
// Pure function: "now" is injected so the 7-day activity window is testable,
// and its location decides which calendar day a timestamp falls on.
func Aggregate(profiles []*prospects.Profile, now time.Time) Report {
	buckets := make(map[string]*DateBucket)
	statusCounts := make(map[prospects.Status]int)
	weekAgo := now.AddDate(0, 0, -7)

	var completed, inProgress, pending, failed, activeWeek int
	for _, p := range profiles {
		key := UnknownBucket
		if !p.GeneratedAt.IsZero() {
			key = p.GeneratedAt.In(now.Location()).Format("2006-01-02")
		}
		b := buckets[key]
		if b == nil {
			b = &DateBucket{Date: key}
			buckets[key] = b
		}
		b.Total++
		switch p.Status {
		case prospects.StatusCompleted:
			b.Completed++
			completed++
		case prospects.StatusInProgress:
			b.InProgress++
			inProgress++
		case prospects.StatusPending:
			b.Pending++
			pending++
		case prospects.StatusFailed:
			failed++
		}
		statusCounts[p.Status]++

		if !p.GeneratedAt.IsZero() && !p.GeneratedAt.Before(weekAgo) {
			activeWeek++
		}
	}

	series := make([]DateBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	// ascending by date key; "Unknown" sorts after ISO dates, posisinya best-effort
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	dist := make([]StatusCount, 0, len(statusCounts))
	for _, st := range statusOrder {
		if n := statusCounts[st]; n > 0 {
			dist = append(dist, StatusCount{Name: string(st), Value: n})
			delete(statusCounts, st)
		}
	}
	// status di luar enum (data lama) tetap dilaporkan, di belakang
	if len(statusCounts) > 0 {
		extras := make([]string, 0, len(statusCounts))
		for st := range statusCounts {
			extras = append(extras, string(st))
		}
		sort.Strings(extras)
		for _, st := range extras {
			dist = append(dist, StatusCount{Name: st, Value: statusCounts[prospects.Status(st)]})
		}
	}

	total := len(profiles)
	successRate := "0"
	avgDaily := "0"
	if total > 0 {
		successRate = fmt.Sprintf("%.1f", float64(completed)/float64(total)*100)
		avgDaily = fmt.Sprintf("%.1f", float64(total)/float64(max(len(buckets), 1)))
	}

	return Report{
		TimeSeries:         series,
		StatusDistribution: dist,
		Summary: Summary{
			Total:                total,
			Completed:            completed,
			InProgress:           inProgress,
			Pending:              pending,
			Failed:               failed,
			SuccessRate:          successRate,
			AverageDailyProfiles: avgDaily,
			ActiveThisWeek:       activeWeek,
		},
	}
}
