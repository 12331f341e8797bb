package domain

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Positional jitter magnitudes in degrees. Traffic points sit on wide
// avenues and tolerate a larger spread.
const (
	trafficJitter = 0.002
	defaultJitter = 0.001
)

// rainfallDist is the discrete daily rainfall distribution: value in mm
// to cumulative probability.
var rainfallDist = []struct {
	mm   float64
	cuml float64
}{
	{0, 0.60},
	{5, 0.80},
	{15, 0.95},
	{40, 1.00},
}

// Generator produces full EventSets for a scenario. Randomness comes
// from the injected source; GeneratedAt comes from the package clock.
type Generator struct {
	catalog *Catalog

	// mu serializes access to rng, which is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator over the catalog with an explicit
// random source. Seed the source for reproducible output.
func NewGenerator(catalog *Catalog, rng *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// Generate produces the complete record set for a region over an
// inclusive date range: all hours 0-23 of each date, all categories, all
// points of interest. It validates its inputs before emitting any record;
// there is no partial-failure path.
func (g *Generator) Generate(region string, start, end time.Time) (*EventSet, error) {
	r, ok := g.catalog.Region(region)
	if !ok {
		return nil, fmt.Errorf("unknown region %q", region)
	}

	start = DateOf(start)
	end = DateOf(end)
	if start.After(end) {
		return nil, fmt.Errorf("invalid date range: start %s after end %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	records := make([]EventRecord, 0, days*24*g.catalog.PointCount(r.Name))

	g.mu.Lock()
	defer g.mu.Unlock()

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dayOfWeek := MondayIndexed(date.Weekday())
		rainfall := g.drawRainfall()

		for hour := 0; hour < 24; hour++ {
			ts := date.Add(time.Duration(hour) * time.Hour)
			for _, cat := range Categories() {
				for _, poi := range g.catalog.PointsOfInterest(r.Name, cat) {
					records = append(records, EventRecord{
						ID:           generateID(r.Name, poi.Name, date, hour, cat),
						Category:     cat,
						LocationName: poi.Name,
						Area:         poi.Area,
						Geo:          g.jittered(poi.Geo, cat),
						Timestamp:    ts,
						Hour:         hour,
						DayOfWeek:    dayOfWeek,
						Intensity:    cat.SampleIntensity(hour, dayOfWeek, rainfall, g.rng),
						RainfallMM:   rainfall,
					})
				}
			}
		}
	}

	return &EventSet{
		Region:      r.Name,
		Start:       start,
		End:         end,
		Records:     records,
		GeneratedAt: clock.Now(),
	}, nil
}

// drawRainfall samples one daily rainfall value from the discrete
// distribution. Callers must hold g.mu.
func (g *Generator) drawRainfall() float64 {
	p := g.rng.Float64()
	for _, b := range rainfallDist {
		if p < b.cuml {
			return b.mm
		}
	}
	return rainfallDist[len(rainfallDist)-1].mm
}

// jittered displaces a point by a small uniform offset, independently
// per axis. Callers must hold g.mu.
func (g *Generator) jittered(geo Geo, cat Category) Geo {
	j := defaultJitter
	if cat == CategoryTraffic {
		j = trafficJitter
	}
	return Geo{
		Lat: geo.Lat + (g.rng.Float64()-0.5)*j,
		Lon: geo.Lon + (g.rng.Float64()-0.5)*j,
	}
}
