// Package analysis assembles the full dashboard report from the three
// datasets: KPIs, trend buckets, the station heatmap, risk-ranked
// materials, the occupancy/downtime correlation and the per-panel
// insights.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/de-tools/factory-atlas/pkg/services/aggregate"
	"github.com/de-tools/factory-atlas/pkg/services/insight"
	"github.com/de-tools/factory-atlas/pkg/services/risk"
	"github.com/de-tools/factory-atlas/pkg/services/stats"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/rs/zerolog"
)

// ErrUnknownStation is returned when the station filter names a station
// absent from the dataset.
var ErrUnknownStation = errors.New("analysis: unknown station")

// Settings contains the analysis weights and thresholds.
type Settings struct {
	// OccupancyWeight and DowntimeWeight blend the two normalized station
	// metrics into the bottleneck score (defaults: 0.6 / 0.4)
	OccupancyWeight float64
	DowntimeWeight  float64
	// Insight holds the classification thresholds for insight derivation
	Insight insight.Settings
}

func DefaultSettings() Settings {
	return Settings{
		OccupancyWeight: 0.6,
		DowntimeWeight:  0.4,
		Insight:         insight.DefaultSettings(),
	}
}

// Request selects one dashboard view: a time granularity for the trend
// panel and an optional station filter for the heatmap.
type Request struct {
	Period  domain.Period
	Station string
}

type Analyzer struct {
	store    csvdata.Store
	settings Settings
}

func NewAnalyzer(store csvdata.Store, settings Settings) *Analyzer {
	return &Analyzer{store: store, settings: settings}
}

// BuildReport derives one complete dashboard view. It is stateless and
// side-effect free: calling it repeatedly over the same datasets yields
// identical reports. Missing dataset files degrade to empty panels with
// the NoData flag set rather than failing the whole view.
func (a *Analyzer) BuildReport(ctx context.Context, req Request) (domain.DashboardReport, error) {
	logger := zerolog.Ctx(ctx)

	production, skippedProduction, err := a.loadProduction(ctx)
	if err != nil {
		return domain.DashboardReport{}, err
	}
	stations, skippedStations, err := a.loadStations(ctx)
	if err != nil {
		return domain.DashboardReport{}, err
	}
	materials, skippedMaterials, err := a.loadMaterials(ctx)
	if err != nil {
		return domain.DashboardReport{}, err
	}

	report := domain.DashboardReport{
		Period:      req.Period,
		Station:     req.Station,
		SkippedRows: skippedProduction + skippedStations + skippedMaterials,
		NoData:      len(production) == 0,
	}

	report.KPI = summarizeKPIs(production)

	if len(production) > 0 {
		buckets, err := aggregate.Aggregate(production, req.Period)
		if err != nil {
			return domain.DashboardReport{}, fmt.Errorf("analysis: aggregate trend: %w", err)
		}
		report.Trend = buckets
	}

	heatmap, err := buildHeatmap(stations, req.Station, a.settings)
	if err != nil {
		return domain.DashboardReport{}, err
	}
	report.Heatmap = heatmap

	report.Materials = risk.ScoreMaterials(materials)

	corr, reg, status := correlate(stations)
	report.Correlation = corr
	report.Regression = reg
	report.CorrelationStatus = status

	report.Insights = domain.InsightSections{
		Executive:   insight.Executive(report.KPI, a.settings.Insight),
		Station:     insight.Stations(stations),
		Material:    insight.Materials(report.Materials, a.settings.Insight),
		Correlation: insight.Correlation(corr, status, a.settings.Insight),
	}

	if report.SkippedRows > 0 {
		logger.Warn().Int("skipped_rows", report.SkippedRows).Msg("datasets contained malformed rows")
	}
	return report, nil
}

func (a *Analyzer) loadProduction(ctx context.Context) ([]domain.ProductionRecord, int, error) {
	records, skipped, err := a.store.ProductionRecords(ctx)
	if errors.Is(err, csvdata.ErrDatasetMissing) {
		return nil, 0, nil
	}
	return records, skipped, err
}

func (a *Analyzer) loadStations(ctx context.Context) ([]domain.StationRecord, int, error) {
	records, skipped, err := a.store.StationRecords(ctx)
	if errors.Is(err, csvdata.ErrDatasetMissing) {
		return nil, 0, nil
	}
	return records, skipped, err
}

func (a *Analyzer) loadMaterials(ctx context.Context) ([]domain.MaterialRecord, int, error) {
	records, skipped, err := a.store.MaterialRecords(ctx)
	if errors.Is(err, csvdata.ErrDatasetMissing) {
		return nil, 0, nil
	}
	return records, skipped, err
}

func summarizeKPIs(production []domain.ProductionRecord) domain.KPISummary {
	var kpi domain.KPISummary
	var times []float64
	for _, r := range production {
		kpi.TotalProduction += r.Production
		kpi.TotalFaulty += r.Faulty
		times = append(times, r.AvgProductionTime)
	}
	if kpi.TotalProduction > 0 {
		kpi.FaultRate = float64(kpi.TotalFaulty) / float64(kpi.TotalProduction)
	}
	kpi.AvgProductionTime = stats.Mean(times)
	return kpi
}

// buildHeatmap emits one normalized cell per station and metric.
// Occupancy is already a fraction; downtime and the blended bottleneck
// score are scaled by their maxima across all stations, so the filter
// never changes a station's cell values.
func buildHeatmap(stations []domain.StationRecord, filter string, settings Settings) ([]domain.HeatmapCell, error) {
	if len(stations) == 0 {
		return nil, nil
	}

	if filter != "" && filter != domain.StationFilterAll {
		found := false
		for _, s := range stations {
			if s.StationName == filter {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStation, filter)
		}
	}

	var maxDowntime float64
	for _, s := range stations {
		if s.Downtime > maxDowntime {
			maxDowntime = s.Downtime
		}
	}

	scores := make([]float64, len(stations))
	var maxScore float64
	for i, s := range stations {
		normalizedDowntime := 0.0
		if maxDowntime > 0 {
			normalizedDowntime = s.Downtime / maxDowntime
		}
		scores[i] = settings.OccupancyWeight*s.OccupancyRate + settings.DowntimeWeight*normalizedDowntime
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}

	var cells []domain.HeatmapCell
	for i, s := range stations {
		if filter != "" && filter != domain.StationFilterAll && s.StationName != filter {
			continue
		}

		downtime := 0.0
		if maxDowntime > 0 {
			downtime = s.Downtime / maxDowntime
		}
		score := 0.0
		if maxScore > 0 {
			score = scores[i] / maxScore
		}

		cells = append(cells,
			domain.HeatmapCell{Station: s.StationName, Metric: domain.MetricOccupancy, Value: s.OccupancyRate},
			domain.HeatmapCell{Station: s.StationName, Metric: domain.MetricDowntime, Value: downtime},
			domain.HeatmapCell{Station: s.StationName, Metric: domain.MetricBottleneckScore, Value: score},
		)
	}
	return cells, nil
}

func correlate(stations []domain.StationRecord) (*domain.Correlation, *domain.Regression, domain.CorrelationStatus) {
	x := make([]float64, len(stations))
	y := make([]float64, len(stations))
	for i, s := range stations {
		x[i] = s.OccupancyRate
		y[i] = s.Downtime
	}

	coefficient, err := stats.Correlation(x, y)
	switch {
	case errors.Is(err, stats.ErrInsufficientData):
		return nil, nil, domain.CorrelationInsufficientData
	case errors.Is(err, stats.ErrZeroVariance):
		return nil, nil, domain.CorrelationZeroVariance
	}

	reg, err := stats.LinearRegression(x, y)
	if err != nil {
		// Correlation succeeded, so x has variance; only y can be flat,
		// which still produces a valid zero-slope fit upstream. Guard anyway.
		return &domain.Correlation{Coefficient: coefficient}, nil, domain.CorrelationOK
	}
	return &domain.Correlation{Coefficient: coefficient}, &reg, domain.CorrelationOK
}
