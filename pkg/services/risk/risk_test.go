package risk

import (
	"testing"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("floor applies when resupply is zero", func(t *testing.T) {
		m := domain.MaterialRecord{AvgUsage: 100, AvgResupply: 0}
		assert.InDelta(t, 1000.0, Score(m), 1e-9)
	})

	t.Run("plain ratio above the floor", func(t *testing.T) {
		m := domain.MaterialRecord{AvgUsage: 100, AvgResupply: 50}
		assert.InDelta(t, 2.0, Score(m), 1e-9)
	})
}

func TestScoreMaterialsRanking(t *testing.T) {
	materials := []domain.MaterialRecord{
		{Material: "batteries", AvgUsage: 40, AvgResupply: 20},
		{Material: "casings", AvgUsage: 90, AvgResupply: 10},
		{Material: "led_displays", AvgUsage: 30, AvgResupply: 60},
	}

	scored := ScoreMaterials(materials)
	require.Len(t, scored, 3)
	assert.Equal(t, "casings", scored[0].Material)
	assert.Equal(t, "batteries", scored[1].Material)
	assert.Equal(t, "led_displays", scored[2].Material)
}

func TestScoreMaterialsStableTies(t *testing.T) {
	materials := []domain.MaterialRecord{
		{Material: "first", AvgUsage: 10, AvgResupply: 5},
		{Material: "second", AvgUsage: 20, AvgResupply: 10},
	}

	scored := ScoreMaterials(materials)
	require.Len(t, scored, 2)
	assert.Equal(t, "first", scored[0].Material)
	assert.Equal(t, "second", scored[1].Material)
}

func TestScoreMaterialsDoesNotMutateInput(t *testing.T) {
	materials := []domain.MaterialRecord{
		{Material: "batteries", AvgUsage: 40, AvgResupply: 20},
		{Material: "casings", AvgUsage: 90, AvgResupply: 10},
	}

	first := ScoreMaterials(materials)
	second := ScoreMaterials(materials)
	assert.Equal(t, first, second)
	assert.Equal(t, "batteries", materials[0].Material)
}
