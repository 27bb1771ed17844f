// Package risk ranks materials by supply-chain risk.
package risk

import (
	"sort"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

// ResupplyFloor caps the divisor from below so materials that are never
// resupplied get a large finite score instead of blowing up the ratio.
const ResupplyFloor = 0.1

// Score computes the risk score for one material: average usage over
// average resupply, with the resupply rate floored at ResupplyFloor.
func Score(m domain.MaterialRecord) float64 {
	resupply := m.AvgResupply
	if resupply < ResupplyFloor {
		resupply = ResupplyFloor
	}
	return m.AvgUsage / resupply
}

// ScoreMaterials returns the materials with risk scores populated,
// sorted descending by score. Ties keep input order, so the ranking is
// deterministic for identical datasets.
func ScoreMaterials(materials []domain.MaterialRecord) []domain.ScoredMaterial {
	scored := make([]domain.ScoredMaterial, 0, len(materials))
	for _, m := range materials {
		scored = append(scored, domain.ScoredMaterial{
			MaterialRecord: m,
			RiskScore:      Score(m),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RiskScore > scored[j].RiskScore
	})
	return scored
}
