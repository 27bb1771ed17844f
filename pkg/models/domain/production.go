package domain

import "time"

// Period selects the time granularity for production rollups.
type Period string

const (
	PeriodDaily     Period = "daily"
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
)

// ParsePeriod maps a user-supplied selector onto a Period. An empty
// selector defaults to daily.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return Period(s), true
	case "":
		return PeriodDaily, true
	default:
		return "", false
	}
}

// ProductionRecord is one production day of the factory line.
// Faulty never exceeds Production; FaultyRate comes from the source
// dataset and is repaired at load time when missing or inconsistent.
type ProductionRecord struct {
	Date              time.Time
	Production        int
	Faulty            int
	FaultyRate        float64
	AvgDowntime       float64
	AvgProductionTime float64
}

// AggregatedBucket summarizes the production records falling into one
// aggregation window. Slice order is chronological by the first record
// seen for the bucket.
type AggregatedBucket struct {
	TimeKey    string
	Production int
	Faulty     int
	FaultyRate float64
}
