// Package simulation models the watch-factory line: items arrive at
// random intervals and pass through six stations, consuming materials
// that are resupplied from shared containers. Replication metrics feed
// the dashboard datasets.
package simulation

import (
	"math/rand"
)

// Material keys, in line order of first use.
const (
	MaterialBaseCircuits     = "base_circuits"
	MaterialMicrocontrollers = "microcontrollers"
	MaterialLEDDisplays      = "led_displays"
	MaterialCasings          = "casings"
	MaterialBatteries        = "batteries"
)

// MaterialNames lists every material consumed on the line.
var MaterialNames = []string{
	MaterialBaseCircuits,
	MaterialMicrocontrollers,
	MaterialLEDDisplays,
	MaterialCasings,
	MaterialBatteries,
}

// failureRates is the per-station probability of a fault that needs
// repair before the item can move on.
var failureRates = [NumStations]float64{0.02, 0.01, 0.05, 0.15, 0.07, 0.06}

// Config holds the stochastic parameters of one replication.
type Config struct {
	// SimTime is the run horizon in simulation time units (default: 5000)
	SimTime float64
	// Runs is the number of replications per simulation (default: 100)
	Runs int
	// Seed makes a simulation reproducible; 0 seeds from the clock
	Seed int64
	// ArrivalMean is the mean inter-arrival time of new items (default: 4)
	ArrivalMean float64
	// WorkMean and WorkStd parameterize the Gaussian station work time (default: 4, 1)
	WorkMean float64
	WorkStd  float64
	// RepairMean is the mean repair time after a station fault (default: 3)
	RepairMean float64
	// ResupplyMean and ResupplyStd parameterize the Gaussian resupply delay (default: 2, 0.5)
	ResupplyMean float64
	ResupplyStd  float64
	// ContainerSize is the units per material container (default: 25)
	ContainerSize int
	// QualityRejectRate is the probability a finished watch fails final QA (default: 0.05)
	QualityRejectRate float64
}

func DefaultConfig() Config {
	return Config{
		SimTime:           5000,
		Runs:              100,
		ArrivalMean:       4,
		WorkMean:          4,
		WorkStd:           1,
		RepairMean:        3,
		ResupplyMean:      2,
		ResupplyStd:       0.5,
		ContainerSize:     25,
		QualityRejectRate: 0.05,
	}
}

type factory struct {
	cfg           Config
	rng           *rand.Rand
	collector     *Collector
	stationFreeAt [NumStations]float64
	materials     map[string]int
}

type assemblyStep struct {
	material string
	station  int
}

// runOnce executes a single replication and returns its metrics.
func runOnce(cfg Config, rng *rand.Rand) RunMetrics {
	f := &factory{
		cfg:       cfg,
		rng:       rng,
		collector: NewCollector(),
		materials: make(map[string]int, len(MaterialNames)),
	}
	for _, m := range MaterialNames {
		f.materials[m] = cfg.ContainerSize
	}

	arrival := 0.0
	for {
		arrival += rng.ExpFloat64() * cfg.ArrivalMean
		if arrival >= cfg.SimTime {
			break
		}
		f.assemble(arrival)
	}
	return f.collector.Snapshot(cfg.SimTime)
}

// assemble pushes one item through the station sequence. Case assembly
// runs on either of two interchangeable stations.
func (f *factory) assemble(arrival float64) {
	caseStation := 3
	if f.rng.Intn(2) == 1 {
		caseStation = 4
	}
	steps := []assemblyStep{
		{MaterialBaseCircuits, 0},
		{MaterialMicrocontrollers, 1},
		{MaterialLEDDisplays, 2},
		{MaterialCasings, caseStation},
		{MaterialBatteries, 5},
	}

	now := arrival
	for _, step := range steps {
		now = f.consumeMaterial(step.material, now)

		start := now
		if f.stationFreeAt[step.station] > start {
			start = f.stationFreeAt[step.station]
		}
		work := f.gauss(f.cfg.WorkMean, f.cfg.WorkStd)
		f.collector.RecordWorkTime(step.station, work)
		end := start + work

		if f.rng.Float64() < failureRates[step.station] {
			repair := f.rng.ExpFloat64() * f.cfg.RepairMean
			f.collector.RecordFixingTime(step.station, repair)
			end += repair
		}

		f.stationFreeAt[step.station] = end
		now = end
	}

	// Items still on the line at the horizon are not counted.
	if now > f.cfg.SimTime {
		return
	}

	f.collector.RecordProductionTime(now - arrival)
	f.collector.RecordProduction()
	if f.rng.Float64() < f.cfg.QualityRejectRate {
		f.collector.RecordFaulty()
	}
}

func (f *factory) consumeMaterial(material string, now float64) float64 {
	if f.materials[material] <= 0 {
		now += f.gauss(f.cfg.ResupplyMean, f.cfg.ResupplyStd)
		f.materials[material] = f.cfg.ContainerSize
		f.collector.RecordResupply(material)
	}
	f.materials[material]--
	f.collector.RecordMaterialUse(material)
	return now
}

// gauss samples a normal distribution truncated at zero.
func (f *factory) gauss(mean, std float64) float64 {
	v := f.rng.NormFloat64()*std + mean
	if v < 0 {
		return 0
	}
	return v
}
