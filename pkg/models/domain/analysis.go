package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Insight is one textual finding derived from the analyzed datasets.
// Insights are regenerated on every analysis pass; within a section the
// first entry is the primary finding.
type Insight struct {
	Text     string
	Severity Severity
}

// Correlation is a Pearson product-moment coefficient, in [-1,1].
type Correlation struct {
	Coefficient float64
}

// Regression is an ordinary-least-squares fit y = Slope*x + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
}

// CorrelationStatus tells the rendering layer why correlation values
// may be absent from a report.
type CorrelationStatus string

const (
	CorrelationOK               CorrelationStatus = "ok"
	CorrelationInsufficientData CorrelationStatus = "insufficient_data"
	CorrelationZeroVariance     CorrelationStatus = "zero_variance"
)

// KPISummary is the executive-level rollup over all production records.
type KPISummary struct {
	TotalProduction   int
	TotalFaulty       int
	FaultRate         float64
	AvgProductionTime float64
}

// InsightSections groups insights by dashboard panel.
type InsightSections struct {
	Executive   []Insight
	Station     []Insight
	Material    []Insight
	Correlation []Insight
}

// DashboardReport is everything a rendering layer needs for one view of
// the dashboard: chart-ready series plus the derived findings. NoData
// is set when the production dataset is empty so the UI can fall back
// to a "no data available" state instead of rendering empty panels.
type DashboardReport struct {
	Period            Period
	Station           string
	KPI               KPISummary
	Trend             []AggregatedBucket
	Heatmap           []HeatmapCell
	Materials         []ScoredMaterial
	Correlation       *Correlation
	Regression        *Regression
	CorrelationStatus CorrelationStatus
	Insights          InsightSections
	SkippedRows       int
	NoData            bool
}
