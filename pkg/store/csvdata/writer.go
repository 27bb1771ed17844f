package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

// Dataset is one complete snapshot of the three dashboard datasets.
type Dataset struct {
	Production []domain.ProductionRecord
	Stations   []domain.StationRecord
	Materials  []domain.MaterialRecord
}

// Writer materializes a Dataset as the three CSV files the Store reads
// back. Each write replaces the previous snapshot.
type Writer struct {
	dataDir string
}

func NewWriter(dataDir string) (*Writer, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("csvdata: data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("csvdata: create data directory: %w", err)
	}
	return &Writer{dataDir: dataDir}, nil
}

func (w *Writer) Write(ds Dataset) error {
	production := make([][]string, 0, len(ds.Production)+1)
	production = append(production, []string{
		"date", "production", "faulty", "faulty_rate", "avg_downtime", "avg_production_time",
	})
	for _, r := range ds.Production {
		production = append(production, []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Production),
			strconv.Itoa(r.Faulty),
			formatFloat(r.FaultyRate),
			formatFloat(r.AvgDowntime),
			formatFloat(r.AvgProductionTime),
		})
	}
	if err := w.writeFile(ProductionFile, production); err != nil {
		return err
	}

	stations := make([][]string, 0, len(ds.Stations)+1)
	stations = append(stations, []string{"station_id", "station_name", "occupancy_rate", "downtime"})
	for _, s := range ds.Stations {
		stations = append(stations, []string{
			strconv.Itoa(s.StationID),
			s.StationName,
			formatFloat(s.OccupancyRate),
			formatFloat(s.Downtime),
		})
	}
	if err := w.writeFile(StationFile, stations); err != nil {
		return err
	}

	materials := make([][]string, 0, len(ds.Materials)+1)
	materials = append(materials, []string{
		"material", "display_name", "total_usage", "total_resupply", "avg_usage", "avg_resupply",
	})
	for _, m := range ds.Materials {
		materials = append(materials, []string{
			m.Material,
			m.DisplayName,
			strconv.Itoa(m.TotalUsage),
			strconv.Itoa(m.TotalResupply),
			formatFloat(m.AvgUsage),
			formatFloat(m.AvgResupply),
		})
	}
	return w.writeFile(MaterialFile, materials)
}

func (w *Writer) writeFile(name string, rows [][]string) error {
	path := filepath.Join(w.dataDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvdata: create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("csvdata: write %s: %w", name, err)
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
