// Package insight turns derived metrics into the short textual findings
// shown next to each dashboard panel. All functions are pure: identical
// inputs produce identical insight lists.
package insight

import (
	"fmt"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

// Settings contains the thresholds the insight rules classify against.
type Settings struct {
	// FaultRateThreshold separates a smooth run from a high fault rate (default: 0.05)
	FaultRateThreshold float64
	// TopRiskCount is how many top-risk materials get an order recommendation (default: 2)
	TopRiskCount int
	// LowRiskThreshold is the score below which inventory reduction is suggested (default: 0.5)
	LowRiskThreshold float64
	// WeakCorrelation is the |r| bound below which a relationship counts as weak (default: 0.3)
	WeakCorrelation float64
	// StrongCorrelation is the |r| bound above which a relationship counts as strong (default: 0.7)
	StrongCorrelation float64
}

func DefaultSettings() Settings {
	return Settings{
		FaultRateThreshold: 0.05,
		TopRiskCount:       2,
		LowRiskThreshold:   0.5,
		WeakCorrelation:    0.3,
		StrongCorrelation:  0.7,
	}
}

// Executive classifies the company-level fault rate.
func Executive(kpi domain.KPISummary, cfg Settings) []domain.Insight {
	if kpi.FaultRate < cfg.FaultRateThreshold {
		return []domain.Insight{{
			Text:     fmt.Sprintf("Production is running smoothly (%.1f%%)", kpi.FaultRate*100),
			Severity: domain.SeveritySuccess,
		}}
	}
	return []domain.Insight{{
		Text:     fmt.Sprintf("High fault rate detected (%.1f%%)", kpi.FaultRate*100),
		Severity: domain.SeverityWarning,
	}}
}

// Stations reports the bottleneck and maintenance candidates, plus a
// critical-intervention warning when both point at the same station.
// Ties go to the first station encountered.
func Stations(stations []domain.StationRecord) []domain.Insight {
	if len(stations) == 0 {
		return nil
	}

	busiest := stations[0]
	slowest := stations[0]
	for _, s := range stations[1:] {
		if s.OccupancyRate > busiest.OccupancyRate {
			busiest = s
		}
		if s.Downtime > slowest.Downtime {
			slowest = s
		}
	}

	insights := []domain.Insight{
		{
			Text:     fmt.Sprintf("Bottleneck identified at %s (occupancy %.1f%%)", busiest.StationName, busiest.OccupancyRate*100),
			Severity: domain.SeverityInfo,
		},
		{
			Text:     fmt.Sprintf("Maintenance needed at %s (downtime %.1f units)", slowest.StationName, slowest.Downtime),
			Severity: domain.SeverityInfo,
		},
	}
	if busiest.StationName == slowest.StationName {
		insights = append(insights, domain.Insight{
			Text:     fmt.Sprintf("Critical intervention required at %s", busiest.StationName),
			Severity: domain.SeverityWarning,
		})
	}
	return insights
}

// Materials recommends order increases for the top-risk materials and,
// when any material scores below the low-risk threshold, an inventory
// reduction for the single lowest scorer. The input must already be
// risk-sorted descending.
func Materials(scored []domain.ScoredMaterial, cfg Settings) []domain.Insight {
	var insights []domain.Insight

	top := cfg.TopRiskCount
	if top > len(scored) {
		top = len(scored)
	}
	for _, m := range scored[:top] {
		insights = append(insights, domain.Insight{
			Text:     fmt.Sprintf("Increase order quantity for %s (risk %.1f)", m.DisplayName, m.RiskScore),
			Severity: domain.SeverityInfo,
		})
	}

	// Lowest scorer sits at the tail of the sorted list.
	if len(scored) > 0 {
		lowest := scored[len(scored)-1]
		if lowest.RiskScore < cfg.LowRiskThreshold {
			insights = append(insights, domain.Insight{
				Text:     fmt.Sprintf("Consider reducing inventory for %s (risk %.1f)", lowest.DisplayName, lowest.RiskScore),
				Severity: domain.SeveritySuccess,
			})
		}
	}
	return insights
}

// Correlation emits the coefficient echo, a magnitude classification, a
// direction sentence and a recommendation, in that order. Degenerate
// inputs are reported in words instead of a misleading coefficient.
func Correlation(corr *domain.Correlation, status domain.CorrelationStatus, cfg Settings) []domain.Insight {
	switch status {
	case domain.CorrelationInsufficientData:
		return []domain.Insight{{
			Text:     "Not enough stations to measure a correlation",
			Severity: domain.SeverityInfo,
		}}
	case domain.CorrelationZeroVariance:
		return []domain.Insight{{
			Text:     "Not enough variation across stations to measure a correlation",
			Severity: domain.SeverityInfo,
		}}
	}
	if corr == nil {
		return nil
	}

	r := corr.Coefficient
	abs := r
	if abs < 0 {
		abs = -abs
	}

	var magnitude string
	switch {
	case abs < cfg.WeakCorrelation:
		magnitude = "Weak or no relationship between occupancy and downtime"
	case abs < cfg.StrongCorrelation:
		magnitude = "Moderate relationship between occupancy and downtime"
	default:
		magnitude = "Strong relationship between occupancy and downtime"
	}

	direction := "Stations with higher occupancy tend to have more downtime"
	if r < 0 {
		direction = "Stations with higher occupancy tend to have less downtime"
	}

	var recommendation string
	switch {
	case r > cfg.WeakCorrelation:
		recommendation = "Add resources to high-occupancy stations to reduce downtime"
	case r < -cfg.WeakCorrelation:
		recommendation = "Current resource allocation appears effective"
	default:
		recommendation = "No clear pattern; inspect stations individually"
	}

	return []domain.Insight{
		{Text: fmt.Sprintf("Correlation coefficient: %.2f", r), Severity: domain.SeverityInfo},
		{Text: magnitude, Severity: domain.SeverityInfo},
		{Text: direction, Severity: domain.SeverityInfo},
		{Text: recommendation, Severity: domain.SeverityInfo},
	}
}
