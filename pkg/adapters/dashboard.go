package adapters

import (
	"github.com/de-tools/factory-atlas/pkg/models/api"
	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityWarning:
		return api.SeverityWarning
	case domain.SeveritySuccess:
		return api.SeveritySuccess
	default:
		return api.SeverityInfo
	}
}

func MapInsightDomainToApi(in domain.Insight) api.Insight {
	return api.Insight{
		Text:     in.Text,
		Severity: MapSeverityDomainToApi(in.Severity),
	}
}

func MapInsightsDomainToApi(ins []domain.Insight) []api.Insight {
	res := make([]api.Insight, 0, len(ins))
	for _, in := range ins {
		res = append(res, MapInsightDomainToApi(in))
	}
	return res
}

func MapBucketDomainToApi(b domain.AggregatedBucket) api.Bucket {
	return api.Bucket{
		TimeKey:    b.TimeKey,
		Production: b.Production,
		Faulty:     b.Faulty,
		FaultyRate: b.FaultyRate,
	}
}

func MapHeatmapCellDomainToApi(c domain.HeatmapCell) api.HeatmapCell {
	return api.HeatmapCell{
		Station: c.Station,
		Metric:  c.Metric,
		Value:   c.Value,
	}
}

func MapMaterialDomainToApi(m domain.ScoredMaterial) api.Material {
	return api.Material{
		Material:      m.Material,
		DisplayName:   m.DisplayName,
		TotalUsage:    m.TotalUsage,
		TotalResupply: m.TotalResupply,
		AvgUsage:      m.AvgUsage,
		AvgResupply:   m.AvgResupply,
		RiskScore:     m.RiskScore,
	}
}

func MapDashboardReportDomainToApi(r domain.DashboardReport) api.DashboardReport {
	res := api.DashboardReport{
		Period:            string(r.Period),
		Station:           r.Station,
		CorrelationStatus: string(r.CorrelationStatus),
		KPI: api.KPISummary{
			TotalProduction:   r.KPI.TotalProduction,
			TotalFaulty:       r.KPI.TotalFaulty,
			FaultRate:         r.KPI.FaultRate,
			AvgProductionTime: r.KPI.AvgProductionTime,
		},
		Trend:     make([]api.Bucket, 0, len(r.Trend)),
		Heatmap:   make([]api.HeatmapCell, 0, len(r.Heatmap)),
		Materials: make([]api.Material, 0, len(r.Materials)),
		Insights: api.InsightSections{
			Executive:   MapInsightsDomainToApi(r.Insights.Executive),
			Station:     MapInsightsDomainToApi(r.Insights.Station),
			Material:    MapInsightsDomainToApi(r.Insights.Material),
			Correlation: MapInsightsDomainToApi(r.Insights.Correlation),
		},
		SkippedRows: r.SkippedRows,
		NoData:      r.NoData,
	}

	for _, b := range r.Trend {
		res.Trend = append(res.Trend, MapBucketDomainToApi(b))
	}
	for _, c := range r.Heatmap {
		res.Heatmap = append(res.Heatmap, MapHeatmapCellDomainToApi(c))
	}
	for _, m := range r.Materials {
		res.Materials = append(res.Materials, MapMaterialDomainToApi(m))
	}
	if r.Correlation != nil {
		res.Correlation = &api.Correlation{Coefficient: r.Correlation.Coefficient}
	}
	if r.Regression != nil {
		res.Regression = &api.Regression{Slope: r.Regression.Slope, Intercept: r.Regression.Intercept}
	}
	return res
}
