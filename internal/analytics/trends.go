package analytics

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-monitor/internal/models"
)

const (
	dayLayout  = "2006-01-02"
	hourLayout = "2006-01-02T15:00:00Z"

	// maxDailyBuckets covers MaxRangeSpan plus a partial first day.
	maxDailyBuckets = int(MaxRangeSpan/(24*time.Hour)) + 1
)

// TrendBucket is one fixed-width slot of a trend series. Daily buckets set
// Date, hourly buckets set Hour.
type TrendBucket struct {
	Date                string  `json:"date,omitempty"`
	Hour                string  `json:"hour,omitempty"`
	Total               int     `json:"total_count"`
	HateSpeechCount     int     `json:"hate_speech_count"`
	MisinformationCount int     `json:"misinformation_count"`
	AverageRiskScore    float64 `json:"average_risk_score"`
}

type bucketAcc struct {
	start          time.Time
	total          int
	hateSpeech     int
	misinformation int
	riskSum        float64
}

func (b *bucketAcc) add(r *models.FlaggedContent, t *Tables) {
	b.total++
	b.riskSum += t.riskScore(r.UrgencyLevel)
	switch r.ContentType {
	case models.ContentHateSpeech:
		b.hateSpeech++
	case models.ContentMisinformation:
		b.misinformation++
	}
}

func (b *bucketAcc) bucket(hourly bool) TrendBucket {
	tb := TrendBucket{
		Total:               b.total,
		HateSpeechCount:     b.hateSpeech,
		MisinformationCount: b.misinformation,
	}
	if b.total > 0 {
		tb.AverageRiskScore = round(b.riskSum/float64(b.total), 1)
	}
	if hourly {
		tb.Hour = b.start.Format(hourLayout)
	} else {
		tb.Date = b.start.Format(dayLayout)
	}
	return tb
}

// DailyTrend emits one bucket per UTC calendar day touched by [start, end),
// including days without records. Records outside the window are ignored.
// At most maxDailyBuckets are emitted; a longer window keeps its latest days.
func (a *Aggregator) DailyTrend(records []models.FlaggedContent, start, end time.Time) []TrendBucket {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return []TrendBucket{}
	}
	if end.Sub(start) > MaxRangeSpan {
		start = end.Add(-MaxRangeSpan)
	}

	first := truncateDay(start)
	accs := make([]bucketAcc, 0, maxDailyBuckets)
	for d := first; d.Before(end); d = d.AddDate(0, 0, 1) {
		accs = append(accs, bucketAcc{start: d})
	}

	for i := range records {
		r := &records[i]
		ts := r.DateReported.UTC()
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		idx := dayIndex(first, truncateDay(ts))
		if idx >= 0 && idx < len(accs) {
			accs[idx].add(r, a.tables)
		}
	}

	out := make([]TrendBucket, len(accs))
	for i := range accs {
		out[i] = accs[i].bucket(false)
	}
	return out
}

// GroupedTrend buckets records by UTC hour or day and returns only the
// buckets that hold records, oldest first.
func (a *Aggregator) GroupedTrend(records []models.FlaggedContent, hourly bool) []TrendBucket {
	byStart := make(map[time.Time]*bucketAcc)
	for i := range records {
		r := &records[i]
		ts := r.DateReported.UTC()
		key := truncateDay(ts)
		if hourly {
			key = ts.Truncate(time.Hour)
		}
		acc, ok := byStart[key]
		if !ok {
			acc = &bucketAcc{start: key}
			byStart[key] = acc
		}
		acc.add(r, a.tables)
	}

	accs := make([]*bucketAcc, 0, len(byStart))
	for _, acc := range byStart {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool { return accs[i].start.Before(accs[j].start) })

	out := make([]TrendBucket, len(accs))
	for i, acc := range accs {
		out[i] = acc.bucket(hourly)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayIndex counts calendar days between two UTC midnights.
func dayIndex(first, day time.Time) int {
	return int(day.Sub(first).Hours() / 24)
}
