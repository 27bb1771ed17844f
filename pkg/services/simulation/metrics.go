package simulation

// NumStations is the number of assembly stations on the line.
const NumStations = 6

// StationNames lists the stations in line order; the index doubles as
// the station ID in the datasets.
var StationNames = [NumStations]string{
	"Circuit Preparation",
	"Microcontroller Integration",
	"LED Display Assembly",
	"Case Assembly",
	"Water Sealing",
	"Testing & Packaging",
}

// Collector accumulates the metrics of a single simulation replication.
type Collector struct {
	production      int
	faulty          int
	stationWork     [NumStations]float64
	stationDowntime [NumStations]float64
	productionTimes []float64
	fixingTimes     []float64
	materialsUsed   map[string]int
	resupplyCounts  map[string]int
}

func NewCollector() *Collector {
	return &Collector{
		materialsUsed:  make(map[string]int),
		resupplyCounts: make(map[string]int),
	}
}

func (c *Collector) RecordProduction() {
	c.production++
}

func (c *Collector) RecordFaulty() {
	c.faulty++
}

func (c *Collector) RecordWorkTime(station int, t float64) {
	c.stationWork[station] += t
}

func (c *Collector) RecordFixingTime(station int, t float64) {
	c.fixingTimes = append(c.fixingTimes, t)
	c.stationDowntime[station] += t
}

func (c *Collector) RecordProductionTime(t float64) {
	c.productionTimes = append(c.productionTimes, t)
}

func (c *Collector) RecordMaterialUse(material string) {
	c.materialsUsed[material]++
}

func (c *Collector) RecordResupply(material string) {
	c.resupplyCounts[material]++
}

// RunMetrics is the derived view of one replication.
type RunMetrics struct {
	Production        int
	Faulty            int
	FaultyRate        float64
	OccupancyRates    [NumStations]float64
	Downtimes         [NumStations]float64
	AvgProductionTime float64
	AvgFixingTime     float64
	MaterialsUsed     map[string]int
	ResupplyCounts    map[string]int
}

// Snapshot derives the replication metrics for a run of totalTime
// simulation units. Occupancy is work time over total time, capped at 1
// because the last item on a station may finish past the run horizon.
func (c *Collector) Snapshot(totalTime float64) RunMetrics {
	m := RunMetrics{
		Production:     c.production,
		Faulty:         c.faulty,
		MaterialsUsed:  make(map[string]int, len(c.materialsUsed)),
		ResupplyCounts: make(map[string]int, len(c.resupplyCounts)),
	}
	if c.production > 0 {
		m.FaultyRate = float64(c.faulty) / float64(c.production)
	}
	for i := 0; i < NumStations; i++ {
		occupancy := 0.0
		if totalTime > 0 {
			occupancy = c.stationWork[i] / totalTime
		}
		if occupancy > 1 {
			occupancy = 1
		}
		m.OccupancyRates[i] = occupancy
		m.Downtimes[i] = c.stationDowntime[i]
	}
	m.AvgProductionTime = mean(c.productionTimes)
	m.AvgFixingTime = mean(c.fixingTimes)
	for k, v := range c.materialsUsed {
		m.MaterialsUsed[k] = v
	}
	for k, v := range c.resupplyCounts {
		m.ResupplyCounts[k] = v
	}
	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}
