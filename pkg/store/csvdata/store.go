// Package csvdata reads and writes the three dashboard datasets as CSV
// files in a data directory. It is the only place where string-typed
// source fields are coerced to numbers; everything downstream works on
// typed records.
package csvdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	ProductionFile = "production_data.csv"
	StationFile    = "station_data.csv"
	MaterialFile   = "material_data.csv"
)

// ErrDatasetMissing means a dataset file does not exist yet, typically
// because no simulation has been run.
var ErrDatasetMissing = errors.New("csvdata: dataset file missing")

// Store loads the parsed datasets. Each method also returns the number
// of malformed rows that were skipped: a row missing a required field
// or carrying a non-numeric value is dropped and counted, never fatal,
// since partial data is still useful on a dashboard.
type Store interface {
	ProductionRecords(ctx context.Context) ([]domain.ProductionRecord, int, error)
	StationRecords(ctx context.Context) ([]domain.StationRecord, int, error)
	MaterialRecords(ctx context.Context) ([]domain.MaterialRecord, int, error)
}

type csvStore struct {
	dataDir string
}

func NewStore(dataDir string) (Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("csvdata: data directory is required")
	}
	return &csvStore{dataDir: dataDir}, nil
}

func (s *csvStore) ProductionRecords(ctx context.Context) ([]domain.ProductionRecord, int, error) {
	logger := zerolog.Ctx(ctx)
	rows, err := s.readFile(ProductionFile)
	if err != nil {
		return nil, 0, err
	}

	var records []domain.ProductionRecord
	skipped := 0
	for i, row := range rows {
		r, err := parseProductionRow(row)
		if err != nil {
			skipped++
			logger.Warn().Err(err).Int("row", i+1).Str("file", ProductionFile).Msg("skipping malformed row")
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

func (s *csvStore) StationRecords(ctx context.Context) ([]domain.StationRecord, int, error) {
	logger := zerolog.Ctx(ctx)
	rows, err := s.readFile(StationFile)
	if err != nil {
		return nil, 0, err
	}

	var records []domain.StationRecord
	skipped := 0
	for i, row := range rows {
		r, err := parseStationRow(row)
		if err != nil {
			skipped++
			logger.Warn().Err(err).Int("row", i+1).Str("file", StationFile).Msg("skipping malformed row")
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

func (s *csvStore) MaterialRecords(ctx context.Context) ([]domain.MaterialRecord, int, error) {
	logger := zerolog.Ctx(ctx)
	rows, err := s.readFile(MaterialFile)
	if err != nil {
		return nil, 0, err
	}

	var records []domain.MaterialRecord
	skipped := 0
	for i, row := range rows {
		r, err := parseMaterialRow(row)
		if err != nil {
			skipped++
			logger.Warn().Err(err).Int("row", i+1).Str("file", MaterialFile).Msg("skipping malformed row")
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

// readFile returns one map per data row, keyed by header name.
func (s *csvStore) readFile(name string) ([]map[string]string, error) {
	path := filepath.Join(s.dataDir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetMissing, name)
		}
		return nil, fmt.Errorf("csvdata: open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvdata: read %s: %w", name, err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	header := all[0]
	rows := make([]map[string]string, 0, len(all)-1)
	for _, record := range all[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseProductionRow(row map[string]string) (domain.ProductionRecord, error) {
	date, err := field(row, "date")
	if err != nil {
		return domain.ProductionRecord{}, err
	}
	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.ProductionRecord{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	production, err := intField(row, "production")
	if err != nil {
		return domain.ProductionRecord{}, err
	}
	faulty, err := intField(row, "faulty")
	if err != nil {
		return domain.ProductionRecord{}, err
	}
	if production < 0 || faulty < 0 || faulty > production {
		return domain.ProductionRecord{}, fmt.Errorf("inconsistent counts: production=%d faulty=%d", production, faulty)
	}

	avgDowntime, err := floatField(row, "avg_downtime")
	if err != nil {
		return domain.ProductionRecord{}, err
	}
	avgProductionTime, err := floatField(row, "avg_production_time")
	if err != nil {
		return domain.ProductionRecord{}, err
	}

	// The source rate is not trusted verbatim; recompute when absent or
	// unparsable.
	rate, err := floatField(row, "faulty_rate")
	if err != nil {
		rate = 0
		if production > 0 {
			rate = float64(faulty) / float64(production)
		}
	}

	return domain.ProductionRecord{
		Date:              parsedDate,
		Production:        production,
		Faulty:            faulty,
		FaultyRate:        rate,
		AvgDowntime:       avgDowntime,
		AvgProductionTime: avgProductionTime,
	}, nil
}

func parseStationRow(row map[string]string) (domain.StationRecord, error) {
	id, err := intField(row, "station_id")
	if err != nil {
		return domain.StationRecord{}, err
	}
	name, err := field(row, "station_name")
	if err != nil {
		return domain.StationRecord{}, err
	}
	occupancy, err := floatField(row, "occupancy_rate")
	if err != nil {
		return domain.StationRecord{}, err
	}
	if occupancy < 0 || occupancy > 1 {
		return domain.StationRecord{}, fmt.Errorf("occupancy_rate %v out of [0,1]", occupancy)
	}
	downtime, err := floatField(row, "downtime")
	if err != nil {
		return domain.StationRecord{}, err
	}

	return domain.StationRecord{
		StationID:     id,
		StationName:   name,
		OccupancyRate: occupancy,
		Downtime:      downtime,
	}, nil
}

func parseMaterialRow(row map[string]string) (domain.MaterialRecord, error) {
	material, err := field(row, "material")
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	displayName, err := field(row, "display_name")
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	totalUsage, err := intField(row, "total_usage")
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	totalResupply, err := intField(row, "total_resupply")
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	avgUsage, err := floatField(row, "avg_usage")
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	avgResupply, err := floatField(row, "avg_resupply")
	if err != nil {
		return domain.MaterialRecord{}, err
	}

	return domain.MaterialRecord{
		Material:      material,
		DisplayName:   displayName,
		TotalUsage:    totalUsage,
		TotalResupply: totalResupply,
		AvgUsage:      avgUsage,
		AvgResupply:   avgResupply,
	}, nil
}

func field(row map[string]string, name string) (string, error) {
	v, ok := row[name]
	if !ok || v == "" {
		return "", fmt.Errorf("missing field %q", name)
	}
	return v, nil
}

func intField(row map[string]string, name string) (int, error) {
	v, err := field(row, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("field %q is not an integer: %w", name, err)
	}
	return n, nil
}

func floatField(row map[string]string, name string) (float64, error) {
	v, err := field(row, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not a number: %w", name, err)
	}
	return f, nil
}
