package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// EventRecord is one simulated observation at a point of interest, date,
// and hour. Records are immutable once generated.
type EventRecord struct {
	ID           string   `json:"id"`
	Category     Category `json:"category"`
	LocationName string   `json:"location_name"`
	Area         string   `json:"area"`
	Geo          Geo      `json:"geo"`

	// Timestamp is the calendar date plus hour, UTC, hour granularity.
	Timestamp time.Time `json:"timestamp"`
	Hour      int       `json:"hour"`
	DayOfWeek int       `json:"day_of_week"` // 0 = Monday

	// Intensity is the heuristic severity/activity score in [0,10].
	Intensity float64 `json:"intensity"`

	// RainfallMM is the simulated daily rainfall, shared by every record
	// generated for the same date.
	RainfallMM float64 `json:"rainfall_mm"`
}

// Date returns the record's calendar date at midnight UTC.
func (r EventRecord) Date() time.Time {
	return DateOf(r.Timestamp)
}

// EventSet is the full generated record set for one (region, date range)
// scenario. Generated once per key and cached for the session.
type EventSet struct {
	Region      string        `json:"region"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Records     []EventRecord `json:"records"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Key identifies the scenario this set was generated for. Cache lookups
// are keyed on it, never on the time of call.
func (s *EventSet) Key() string {
	return ScenarioKey(s.Region, s.Start, s.End)
}

// RainfallOn returns the daily rainfall embedded in the set for a date,
// and whether the date has any records.
func (s *EventSet) RainfallOn(date time.Time) (float64, bool) {
	date = DateOf(date)
	for i := range s.Records {
		if s.Records[i].Date().Equal(date) {
			return s.Records[i].RainfallMM, true
		}
	}
	return 0, false
}

// ScenarioKey builds the cache key for a (region, date range) pair.
func ScenarioKey(region string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", region, DateOf(start).Format(time.DateOnly), DateOf(end).Format(time.DateOnly))
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MondayIndexed converts Go's Sunday-based weekday to the 0=Monday
// convention used by the intensity heuristics.
func MondayIndexed(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// DayName returns the English day name for a Monday-indexed weekday.
func DayName(dayOfWeek int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if dayOfWeek < 0 || dayOfWeek >= len(names) {
		return ""
	}
	return names[dayOfWeek]
}

// generateID produces a deterministic ID from the record's key fields.
// Intensity and jitter are excluded so regenerating the same scenario
// yields the same IDs, enabling idempotent downstream consumption.
func generateID(region, location string, date time.Time, hour int, cat Category) string {
	input := fmt.Sprintf("%s|%s|%s|%02d|%s", region, location, date.Format(time.DateOnly), hour, cat)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	return string(cat) + "-" + short
}

// TextGenerator produces free-form analysis text from a prompt. It is
// the port for the hosted generative-AI boundary.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// EventExporter publishes a freshly generated event set to an external
// sink for downstream analytics. Export failures must not affect the
// interactive session.
type EventExporter interface {
	ExportSet(ctx context.Context, set *EventSet) error
}
