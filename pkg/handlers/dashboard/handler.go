package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/factory-atlas/pkg/adapters"
	"github.com/de-tools/factory-atlas/pkg/models/api"
	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/de-tools/factory-atlas/pkg/services/analysis"
	"github.com/de-tools/factory-atlas/pkg/services/simulation"
	"github.com/rs/zerolog"
)

// Analytics builds dashboard reports over the current datasets.
type Analytics interface {
	BuildReport(ctx context.Context, req analysis.Request) (domain.DashboardReport, error)
}

// Simulator runs the factory simulation and refreshes the datasets.
type Simulator interface {
	Run(ctx context.Context) (simulation.Summary, error)
}

type Handler struct {
	analytics Analytics
	simulator Simulator
}

func NewHandler(analytics Analytics, simulator Simulator) *Handler {
	return &Handler{
		analytics: analytics,
		simulator: simulator,
	}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, adapters.MapDashboardReportDomainToApi(report))
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	buckets := make([]api.Bucket, 0, len(report.Trend))
	for _, b := range report.Trend {
		buckets = append(buckets, adapters.MapBucketDomainToApi(b))
	}
	writeJSON(r.Context(), w, buckets)
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	cells := make([]api.HeatmapCell, 0, len(report.Heatmap))
	for _, c := range report.Heatmap {
		cells = append(cells, adapters.MapHeatmapCellDomainToApi(c))
	}
	writeJSON(r.Context(), w, cells)
}

func (h *Handler) GetMaterials(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	materials := make([]api.Material, 0, len(report.Materials))
	for _, m := range report.Materials {
		materials = append(materials, adapters.MapMaterialDomainToApi(m))
	}
	writeJSON(r.Context(), w, materials)
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, api.InsightSections{
		Executive:   adapters.MapInsightsDomainToApi(report.Insights.Executive),
		Station:     adapters.MapInsightsDomainToApi(report.Insights.Station),
		Material:    adapters.MapInsightsDomainToApi(report.Insights.Material),
		Correlation: adapters.MapInsightsDomainToApi(report.Insights.Correlation),
	})
}

// RunSimulation triggers a synchronous simulation run and rewrites the
// datasets. The response carries a success flag instead of an error
// status so the dashboard can surface the message as-is.
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.simulator.Run(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("simulation run failed")
		writeJSON(ctx, w, api.SimulationResult{
			Success: false,
			Message: fmt.Sprintf("Simulation failed: %v", err),
		})
		return
	}
	writeJSON(ctx, w, api.SimulationResult{
		Success: true,
		Message: fmt.Sprintf("Simulation completed: %d runs, %d watches produced", summary.Runs, summary.TotalProduction),
	})
}

func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (domain.DashboardReport, bool) {
	ctx := r.Context()

	period, ok := domain.ParsePeriod(r.URL.Query().Get("period"))
	if !ok {
		http.Error(w, "invalid 'period'. Expected one of: daily, weekly, monthly, quarterly", http.StatusBadRequest)
		return domain.DashboardReport{}, false
	}

	report, err := h.analytics.BuildReport(ctx, analysis.Request{
		Period:  period,
		Station: r.URL.Query().Get("station"),
	})
	if err != nil {
		if errors.Is(err, analysis.ErrUnknownStation) {
			http.Error(w, "unknown station", http.StatusBadRequest)
			return domain.DashboardReport{}, false
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to build dashboard report")
		http.Error(w, "failed to build dashboard report", http.StatusInternalServerError)
		return domain.DashboardReport{}, false
	}
	return report, true
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
