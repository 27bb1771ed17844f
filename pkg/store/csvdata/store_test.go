package csvdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestProductionRecords(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ProductionFile,
		"date,production,faulty,faulty_rate,avg_downtime,avg_production_time\n"+
			"2025-03-03,120,6,0.05,2.5,21.4\n"+
			"2025-03-04,80,12,0.15,3.1,22.8\n")

	store, err := NewStore(dir)
	require.NoError(t, err)

	records, skipped, err := store.ProductionRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, 120, records[0].Production)
	assert.Equal(t, 6, records[0].Faulty)
	assert.InDelta(t, 0.05, records[0].FaultyRate, 1e-9)
	assert.InDelta(t, 2.5, records[0].AvgDowntime, 1e-9)
}

func TestProductionRecordsSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ProductionFile,
		"date,production,faulty,faulty_rate,avg_downtime,avg_production_time\n"+
			"2025-03-03,120,6,0.05,2.5,21.4\n"+
			"not-a-date,80,12,0.15,3.1,22.8\n"+
			"2025-03-05,abc,12,0.15,3.1,22.8\n"+
			"2025-03-06,10,99,0.15,3.1,22.8\n") // faulty > production

	store, err := NewStore(dir)
	require.NoError(t, err)

	records, skipped, err := store.ProductionRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, 120, records[0].Production)
}

func TestProductionRecordsRepairsMissingRate(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, ProductionFile,
		"date,production,faulty,faulty_rate,avg_downtime,avg_production_time\n"+
			"2025-03-03,100,10,,2.5,21.4\n")

	store, err := NewStore(dir)
	require.NoError(t, err)

	records, skipped, err := store.ProductionRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.1, records[0].FaultyRate, 1e-9)
}

func TestStationRecords(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, StationFile,
		"station_id,station_name,occupancy_rate,downtime\n"+
			"0,Circuit Preparation,0.82,4.1\n"+
			"1,Case Assembly,1.7,2.0\n") // occupancy out of range

	store, err := NewStore(dir)
	require.NoError(t, err)

	records, skipped, err := store.StationRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "Circuit Preparation", records[0].StationName)
	assert.InDelta(t, 0.82, records[0].OccupancyRate, 1e-9)
}

func TestMaterialRecords(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, MaterialFile,
		"material,display_name,total_usage,total_resupply,avg_usage,avg_resupply\n"+
			"casings,Casings,9000,90,90,0.9\n")

	store, err := NewStore(dir)
	require.NoError(t, err)

	records, skipped, err := store.MaterialRecords(context.Background())
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, records, 1)
	assert.Equal(t, "casings", records[0].Material)
	assert.InDelta(t, 0.9, records[0].AvgResupply, 1e-9)
}

func TestMissingDataset(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.ProductionRecords(context.Background())
	assert.ErrorIs(t, err, ErrDatasetMissing)
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir)
	require.NoError(t, err)

	ds := Dataset{
		Production: []domain.ProductionRecord{
			{
				Date:              time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
				Production:        120,
				Faulty:            6,
				FaultyRate:        0.05,
				AvgDowntime:       2.5,
				AvgProductionTime: 21.4,
			},
		},
		Stations: []domain.StationRecord{
			{StationID: 0, StationName: "Circuit Preparation", OccupancyRate: 0.82, Downtime: 4.1},
		},
		Materials: []domain.MaterialRecord{
			{Material: "casings", DisplayName: "Casings", TotalUsage: 9000, TotalResupply: 90, AvgUsage: 90, AvgResupply: 0.9},
		},
	}
	require.NoError(t, writer.Write(ds))

	store, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	production, _, err := store.ProductionRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Production, production)

	stations, _, err := store.StationRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Stations, stations)

	materials, _, err := store.MaterialRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.Materials, materials)
}
