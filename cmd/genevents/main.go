// Command genevents generates a seeded event-set fixture for a region and
// date range. It uses the actual domain generator so fixture contents
// match real service behavior, and prints aggregate stats useful when
// updating test assertions.
//
// Usage:
//
//	go run ./cmd/genevents \
//	  -region "João Pessoa, PB" \
//	  -start 2025-06-04 -end 2025-06-10 \
//	  -seed 42 \
//	  -out data/mock/joao_pessoa_events.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/geopredictor/geopredictor-api/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	region := flag.String("region", domain.FeaturedRegion, "region name from the catalog")
	start := flag.String("start", "2025-06-04", "first date of the range (YYYY-MM-DD)")
	end := flag.String("end", "2025-06-10", "last date of the range (YYYY-MM-DD)")
	seed := flag.Int64("seed", 42, "random seed for reproducible output")
	out := flag.String("out", "", "output path for the event-set JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	startDate, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	endDate, err := time.Parse(time.DateOnly, *end)
	if err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}

	// Set a fixed clock for a reproducible GeneratedAt timestamp.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 11, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	gen := domain.NewGenerator(domain.NewCatalog(), rand.New(rand.NewSource(*seed)))
	set, err := gen.Generate(*region, startDate.UTC(), endDate.UTC())
	if err != nil {
		return fmt.Errorf("generate event set: %w", err)
	}

	if err := writeJSON(*out, set); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s (%d records)", *out, len(set.Records))

	printStats(set)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(set *domain.EventSet) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Key: %s\n", set.Key())
	fmt.Printf("Total: %d\n", len(set.Records))

	catCounts := map[domain.Category]int{}
	catMax := map[domain.Category]float64{}
	for i := range set.Records {
		r := &set.Records[i]
		catCounts[r.Category]++
		if r.Intensity > catMax[r.Category] {
			catMax[r.Category] = r.Intensity
		}
	}
	fmt.Printf("By category: traffic=%d, tourist=%d, flood=%d\n",
		catCounts[domain.CategoryTraffic], catCounts[domain.CategoryTourist], catCounts[domain.CategoryFlood])
	fmt.Printf("Peak intensity: traffic=%.2f, tourist=%.2f, flood=%.2f\n",
		catMax[domain.CategoryTraffic], catMax[domain.CategoryTourist], catMax[domain.CategoryFlood])

	printRainfall(set)
	printCommutePeak(set)
	printFirstTraffic(set)
}

func printRainfall(set *domain.EventSet) {
	fmt.Println("\nDaily rainfall:")
	for date := set.Start; !date.After(set.End); date = date.AddDate(0, 0, 1) {
		mm, _ := set.RainfallOn(date)
		fmt.Printf("  %s (%s): %gmm\n",
			date.Format(time.DateOnly), domain.DayName(domain.MondayIndexed(date.Weekday())), mm)
	}
}

func printCommutePeak(set *domain.EventSet) {
	// Weekday evening commute window, the densest traffic cell.
	var count int
	var sum, max float64
	for i := range set.Records {
		r := &set.Records[i]
		if r.Category != domain.CategoryTraffic || r.DayOfWeek >= 5 {
			continue
		}
		if r.Hour < 17 || r.Hour > 19 {
			continue
		}
		count++
		sum += r.Intensity
		if r.Intensity > max {
			max = r.Intensity
		}
	}
	if count == 0 {
		return
	}
	fmt.Printf("\nWeekday commute (17-19h): %d records, mean=%.2f, max=%.2f\n",
		count, sum/float64(count), max)
}

func printFirstTraffic(set *domain.EventSet) {
	for i := range set.Records {
		r := &set.Records[i]
		if r.Category != domain.CategoryTraffic {
			continue
		}
		fmt.Printf("\nFirst traffic record:\n")
		fmt.Printf("  ID: %s\n", r.ID)
		fmt.Printf("  Location: %s (%s)\n", r.LocationName, r.Area)
		fmt.Printf("  Lat: %g, Lon: %g\n", r.Geo.Lat, r.Geo.Lon)
		fmt.Printf("  Timestamp: %s (hour=%d, dow=%d)\n", r.Timestamp.Format(time.RFC3339), r.Hour, r.DayOfWeek)
		fmt.Printf("  Intensity: %.2f, Rainfall: %gmm\n", r.Intensity, r.RainfallMM)
		return
	}
}
