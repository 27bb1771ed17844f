package api

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

type Insight struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

type Bucket struct {
	TimeKey    string  `json:"time_key"`
	Production int     `json:"production"`
	Faulty     int     `json:"faulty"`
	FaultyRate float64 `json:"faulty_rate"`
}

type HeatmapCell struct {
	Station string  `json:"station"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
}

type Material struct {
	Material      string  `json:"material"`
	DisplayName   string  `json:"display_name"`
	TotalUsage    int     `json:"total_usage"`
	TotalResupply int     `json:"total_resupply"`
	AvgUsage      float64 `json:"avg_usage"`
	AvgResupply   float64 `json:"avg_resupply"`
	RiskScore     float64 `json:"risk_score"`
}

type Correlation struct {
	Coefficient float64 `json:"coefficient"`
}

type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

type KPISummary struct {
	TotalProduction   int     `json:"total_production"`
	TotalFaulty       int     `json:"total_faulty"`
	FaultRate         float64 `json:"fault_rate"`
	AvgProductionTime float64 `json:"avg_production_time"`
}

type InsightSections struct {
	Executive   []Insight `json:"executive"`
	Station     []Insight `json:"station"`
	Material    []Insight `json:"material"`
	Correlation []Insight `json:"correlation"`
}

type DashboardReport struct {
	Period            string          `json:"period"`
	Station           string          `json:"station,omitempty"`
	KPI               KPISummary      `json:"kpi"`
	Trend             []Bucket        `json:"trend"`
	Heatmap           []HeatmapCell   `json:"heatmap"`
	Materials         []Material      `json:"materials"`
	Correlation       *Correlation    `json:"correlation,omitempty"`
	Regression        *Regression     `json:"regression,omitempty"`
	CorrelationStatus string          `json:"correlation_status"`
	Insights          InsightSections `json:"insights"`
	SkippedRows       int             `json:"skipped_rows,omitempty"`
	NoData            bool            `json:"no_data"`
}

type SimulationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
