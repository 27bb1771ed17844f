package domain

// StationRecord holds the per-station metrics averaged across
// simulation replications. OccupancyRate is a fraction in [0,1],
// Downtime is in simulation time units.
type StationRecord struct {
	StationID     int
	StationName   string
	OccupancyRate float64
	Downtime      float64
}

// StationFilterAll is the sentinel meaning "no station filter".
const StationFilterAll = "all"

// Heatmap metric names, in display order.
const (
	MetricOccupancy       = "occupancy_rate"
	MetricDowntime        = "downtime"
	MetricBottleneckScore = "bottleneck_score"
)

// HeatmapCell is one station x metric value normalized to [0,1].
type HeatmapCell struct {
	Station string
	Metric  string
	Value   float64
}
