package domain

// MaterialRecord aggregates consumption and resupply of one material
// across simulation replications.
type MaterialRecord struct {
	Material      string
	DisplayName   string
	TotalUsage    int
	TotalResupply int
	AvgUsage      float64
	AvgResupply   float64
}

// ScoredMaterial is a MaterialRecord with its supply-chain risk score.
// Scoring returns new values instead of mutating the source records, so
// an analysis pass can run any number of times over the same dataset.
type ScoredMaterial struct {
	MaterialRecord
	RiskScore float64
}
