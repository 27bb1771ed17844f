package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
	"github.com/de-tools/factory-atlas/pkg/store/csvdata"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
)

// Summary reports what a simulation produced across all replications.
type Summary struct {
	Runs            int
	TotalProduction int
	TotalFaulty     int
	Elapsed         time.Duration
}

// Runner executes simulation replications and materializes the
// resulting dashboard datasets through the csvdata writer.
type Runner struct {
	cfg    Config
	writer *csvdata.Writer
	now    func() time.Time
}

func NewRunner(cfg Config, writer *csvdata.Writer) *Runner {
	return &Runner{
		cfg:    cfg,
		writer: writer,
		now:    time.Now,
	}
}

// Run executes the configured replications, converts them into the
// three datasets and writes the snapshot. It honors ctx cancellation
// between replications.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()

	seed := r.cfg.Seed
	if seed == 0 {
		seed = started.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	runs := make([]RunMetrics, 0, r.cfg.Runs)
	for i := 0; i < r.cfg.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("simulation: cancelled after %d runs: %w", i, err)
		}
		m := runOnce(r.cfg, rng)
		runs = append(runs, m)
		logger.Debug().
			Int("run", i+1).
			Int("production", m.Production).
			Int("faulty", m.Faulty).
			Msg("replication finished")
	}

	ds := buildDataset(runs, r.now())
	if err := r.writer.Write(ds); err != nil {
		return Summary{}, fmt.Errorf("simulation: write datasets: %w", err)
	}

	summary := Summary{Runs: len(runs), Elapsed: time.Since(started)}
	for _, m := range runs {
		summary.TotalProduction += m.Production
		summary.TotalFaulty += m.Faulty
	}
	logger.Info().
		Int("runs", summary.Runs).
		Int("total_production", summary.TotalProduction).
		Int("total_faulty", summary.TotalFaulty).
		Dur("elapsed", summary.Elapsed).
		Msg("simulation complete")
	return summary, nil
}

// buildDataset flattens the replication metrics into the three
// datasets: one production day per replication (dated backwards from
// the reference date), station metrics averaged across replications,
// and material usage totals with per-run averages.
func buildDataset(runs []RunMetrics, ref time.Time) csvdata.Dataset {
	var ds csvdata.Dataset
	if len(runs) == 0 {
		return ds
	}

	start := ref.AddDate(0, 0, -len(runs))
	for i, m := range runs {
		var downtime float64
		for _, d := range m.Downtimes {
			downtime += d
		}
		ds.Production = append(ds.Production, domain.ProductionRecord{
			Date:              start.AddDate(0, 0, i),
			Production:        m.Production,
			Faulty:            m.Faulty,
			FaultyRate:        m.FaultyRate,
			AvgDowntime:       downtime / NumStations,
			AvgProductionTime: m.AvgProductionTime,
		})
	}

	for i := 0; i < NumStations; i++ {
		var occupancy, downtime float64
		for _, m := range runs {
			occupancy += m.OccupancyRates[i]
			downtime += m.Downtimes[i]
		}
		ds.Stations = append(ds.Stations, domain.StationRecord{
			StationID:     i,
			StationName:   StationNames[i],
			OccupancyRate: occupancy / float64(len(runs)),
			Downtime:      downtime / float64(len(runs)),
		})
	}

	usage := make(map[string]int)
	resupply := make(map[string]int)
	for _, m := range runs {
		for k, v := range m.MaterialsUsed {
			usage[k] += v
		}
		for k, v := range m.ResupplyCounts {
			resupply[k] += v
		}
	}
	materials := maps.Keys(usage)
	sort.Strings(materials)
	for _, material := range materials {
		ds.Materials = append(ds.Materials, domain.MaterialRecord{
			Material:      material,
			DisplayName:   displayName(material),
			TotalUsage:    usage[material],
			TotalResupply: resupply[material],
			AvgUsage:      float64(usage[material]) / float64(len(runs)),
			AvgResupply:   float64(resupply[material]) / float64(len(runs)),
		})
	}
	return ds
}

// displayName turns a material key like "led_displays" into "Led Displays".
func displayName(material string) string {
	words := strings.Split(material, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
