// Package aggregate rolls production records up into daily, weekly,
// monthly or quarterly buckets for the trend panel.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

// ErrNoRecords is returned when there is nothing to aggregate; the
// rendering layer shows its "no data available" state on this.
var ErrNoRecords = errors.New("aggregate: no production records")

// Aggregate groups records into buckets of the requested period.
// Buckets are ordered chronologically. For merged periods the fault
// rate is recomputed as sum(faulty)/sum(production) over the bucket,
// never averaged from per-day rates, so low-volume days don't bias it.
// A bucket with zero production reports a fault rate of 0.
func Aggregate(records []domain.ProductionRecord, period domain.Period) ([]domain.AggregatedBucket, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sorted := make([]domain.ProductionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if period == domain.PeriodDaily {
		buckets := make([]domain.AggregatedBucket, 0, len(sorted))
		for _, r := range sorted {
			buckets = append(buckets, domain.AggregatedBucket{
				TimeKey:    r.Date.Format("2006-01-02"),
				Production: r.Production,
				Faulty:     r.Faulty,
				// Daily buckets echo the source rate; no merging happens.
				FaultyRate: r.FaultyRate,
			})
		}
		return buckets, nil
	}

	index := make(map[string]int)
	var buckets []domain.AggregatedBucket
	for _, r := range sorted {
		key, err := bucketKey(r.Date, period)
		if err != nil {
			return nil, err
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, domain.AggregatedBucket{TimeKey: key})
		}
		buckets[i].Production += r.Production
		buckets[i].Faulty += r.Faulty
	}

	for i := range buckets {
		if buckets[i].Production > 0 {
			buckets[i].FaultyRate = float64(buckets[i].Faulty) / float64(buckets[i].Production)
		}
	}
	return buckets, nil
}

func bucketKey(date time.Time, period domain.Period) (string, error) {
	switch period {
	case domain.PeriodWeekly:
		return fmt.Sprintf("Week of %s", weekStart(date).Format("2006-01-02")), nil
	case domain.PeriodMonthly:
		return date.Format("January 2006"), nil
	case domain.PeriodQuarterly:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", date.Year(), quarter), nil
	default:
		return "", fmt.Errorf("aggregate: unsupported period %q", period)
	}
}

// weekStart returns the Sunday on or before the given date.
func weekStart(date time.Time) time.Time {
	return date.AddDate(0, 0, -int(date.Weekday()))
}
