package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ProductionRecords(ctx context.Context) ([]domain.ProductionRecord, int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ProductionRecord), args.Int(1), args.Error(2)
}

func (m *mockStore) StationRecords(ctx context.Context) ([]domain.StationRecord, int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StationRecord), args.Int(1), args.Error(2)
}

func (m *mockStore) MaterialRecords(ctx context.Context) ([]domain.MaterialRecord, int, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MaterialRecord), args.Int(1), args.Error(2)
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func fiveFlatDays() []domain.ProductionRecord {
	records := make([]domain.ProductionRecord, 5)
	for i := range records {
		records[i] = domain.ProductionRecord{
			Date:              day(i + 1),
			Production:        100,
			Faulty:            10,
			FaultyRate:        0.10,
			AvgProductionTime: 20,
		}
	}
	return records
}

func twoStations() []domain.StationRecord {
	return []domain.StationRecord{
		{StationID: 0, StationName: "Circuit Preparation", OccupancyRate: 0.9, Downtime: 8},
		{StationID: 1, StationName: "Water Sealing", OccupancyRate: 0.2, Downtime: 1},
	}
}

func materials() []domain.MaterialRecord {
	return []domain.MaterialRecord{
		{Material: "casings", DisplayName: "Casings", AvgUsage: 90, AvgResupply: 10},
		{Material: "batteries", DisplayName: "Batteries", AvgUsage: 40, AvgResupply: 20},
		{Material: "led_displays", DisplayName: "Led Displays", AvgUsage: 10, AvgResupply: 50},
	}
}

func setupStore(production []domain.ProductionRecord, stations []domain.StationRecord, mats []domain.MaterialRecord) *mockStore {
	store := new(mockStore)
	store.On("ProductionRecords", mock.Anything).Return(production, 0, nil)
	store.On("StationRecords", mock.Anything).Return(stations, 0, nil)
	store.On("MaterialRecords", mock.Anything).Return(mats, 0, nil)
	return store
}

func TestBuildReportEndToEnd(t *testing.T) {
	store := setupStore(fiveFlatDays(), twoStations(), materials())
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{Period: domain.PeriodDaily})
	require.NoError(t, err)

	assert.False(t, report.NoData)
	assert.Equal(t, 500, report.KPI.TotalProduction)
	assert.Equal(t, 50, report.KPI.TotalFaulty)
	assert.InDelta(t, 0.10, report.KPI.FaultRate, 1e-9)

	require.Len(t, report.Trend, 5)
	for _, b := range report.Trend {
		assert.InDelta(t, 0.10, b.FaultyRate, 1e-9)
	}

	// Fault rate of 10% is at or above the 5% threshold.
	require.NotEmpty(t, report.Insights.Executive)
	assert.Equal(t, "High fault rate detected (10.0%)", report.Insights.Executive[0].Text)
	assert.Equal(t, domain.SeverityWarning, report.Insights.Executive[0].Severity)

	// Station 0 is both bottleneck and maintenance candidate.
	require.Len(t, report.Insights.Station, 3)
	assert.Equal(t, "Critical intervention required at Circuit Preparation", report.Insights.Station[2].Text)

	// Two stations give a perfect positive correlation.
	require.NotNil(t, report.Correlation)
	assert.Equal(t, domain.CorrelationOK, report.CorrelationStatus)
	assert.InDelta(t, 1.0, report.Correlation.Coefficient, 1e-9)
	require.NotNil(t, report.Regression)
	assert.Greater(t, report.Regression.Slope, 0.0)

	require.Len(t, report.Materials, 3)
	assert.Equal(t, "casings", report.Materials[0].Material)
}

func TestBuildReportHeatmapNormalization(t *testing.T) {
	store := setupStore(fiveFlatDays(), twoStations(), materials())
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{Period: domain.PeriodDaily})
	require.NoError(t, err)

	require.Len(t, report.Heatmap, 6)
	byKey := map[string]float64{}
	for _, c := range report.Heatmap {
		byKey[c.Station+"/"+c.Metric] = c.Value
	}

	assert.InDelta(t, 0.9, byKey["Circuit Preparation/occupancy_rate"], 1e-9)
	assert.InDelta(t, 1.0, byKey["Circuit Preparation/downtime"], 1e-9)
	assert.InDelta(t, 1.0, byKey["Circuit Preparation/bottleneck_score"], 1e-9)
	assert.InDelta(t, 0.2, byKey["Water Sealing/occupancy_rate"], 1e-9)
	assert.InDelta(t, 0.125, byKey["Water Sealing/downtime"], 1e-9)

	for _, c := range report.Heatmap {
		assert.GreaterOrEqual(t, c.Value, 0.0)
		assert.LessOrEqual(t, c.Value, 1.0)
	}
}

func TestBuildReportStationFilter(t *testing.T) {
	store := setupStore(fiveFlatDays(), twoStations(), materials())
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{
		Period:  domain.PeriodDaily,
		Station: "Water Sealing",
	})
	require.NoError(t, err)

	require.Len(t, report.Heatmap, 3)
	for _, c := range report.Heatmap {
		assert.Equal(t, "Water Sealing", c.Station)
	}
	// Normalization still spans all stations: the filtered station keeps
	// its downtime fraction of the global maximum.
	assert.InDelta(t, 0.125, report.Heatmap[1].Value, 1e-9)

	// Station insights still consider the whole line.
	require.Len(t, report.Insights.Station, 3)
}

func TestBuildReportUnknownStation(t *testing.T) {
	store := setupStore(fiveFlatDays(), twoStations(), materials())
	analyzer := NewAnalyzer(store, DefaultSettings())

	_, err := analyzer.BuildReport(context.Background(), Request{
		Period:  domain.PeriodDaily,
		Station: "Paint Shop",
	})
	assert.ErrorIs(t, err, ErrUnknownStation)
}

func TestBuildReportZeroVariance(t *testing.T) {
	flat := []domain.StationRecord{
		{StationID: 0, StationName: "A", OccupancyRate: 0.5, Downtime: 2},
		{StationID: 1, StationName: "B", OccupancyRate: 0.5, Downtime: 4},
	}
	store := setupStore(fiveFlatDays(), flat, materials())
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{Period: domain.PeriodDaily})
	require.NoError(t, err)

	assert.Equal(t, domain.CorrelationZeroVariance, report.CorrelationStatus)
	assert.Nil(t, report.Correlation)
	require.Len(t, report.Insights.Correlation, 1)
	assert.Equal(t, "Not enough variation across stations to measure a correlation", report.Insights.Correlation[0].Text)
}

func TestBuildReportMissingDatasets(t *testing.T) {
	store := new(mockStore)
	store.On("ProductionRecords", mock.Anything).Return([]domain.ProductionRecord(nil), 0, csvdata.ErrDatasetMissing)
	store.On("StationRecords", mock.Anything).Return([]domain.StationRecord(nil), 0, csvdata.ErrDatasetMissing)
	store.On("MaterialRecords", mock.Anything).Return([]domain.MaterialRecord(nil), 0, csvdata.ErrDatasetMissing)
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{Period: domain.PeriodWeekly})
	require.NoError(t, err)

	assert.True(t, report.NoData)
	assert.Empty(t, report.Trend)
	assert.Empty(t, report.Heatmap)
	assert.Empty(t, report.Materials)
	assert.Equal(t, domain.CorrelationInsufficientData, report.CorrelationStatus)
}

func TestBuildReportIdempotent(t *testing.T) {
	store := setupStore(fiveFlatDays(), twoStations(), materials())
	analyzer := NewAnalyzer(store, DefaultSettings())
	ctx := context.Background()
	req := Request{Period: domain.PeriodMonthly}

	first, err := analyzer.BuildReport(ctx, req)
	require.NoError(t, err)
	second, err := analyzer.BuildReport(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildReportCountsSkippedRows(t *testing.T) {
	store := new(mockStore)
	store.On("ProductionRecords", mock.Anything).Return(fiveFlatDays(), 2, nil)
	store.On("StationRecords", mock.Anything).Return(twoStations(), 1, nil)
	store.On("MaterialRecords", mock.Anything).Return(materials(), 0, nil)
	analyzer := NewAnalyzer(store, DefaultSettings())

	report, err := analyzer.BuildReport(context.Background(), Request{Period: domain.PeriodDaily})
	require.NoError(t, err)
	assert.Equal(t, 3, report.SkippedRows)
}
