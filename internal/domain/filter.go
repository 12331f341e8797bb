package domain

import (
	"fmt"
	"sort"
	"time"
)

// FilterCriteria is the ephemeral, user-driven view selection: one
// calendar date, an inclusive hour range, and a category subset. An
// empty Categories slice selects nothing.
type FilterCriteria struct {
	Date       time.Time  `json:"date"`
	HourFrom   int        `json:"hour_from"`
	HourTo     int        `json:"hour_to"`
	Categories []Category `json:"categories"`
}

// Validate checks hour bounds and category names. The date itself is not
// range-checked here; a date outside the generated window simply yields
// an empty view.
func (c FilterCriteria) Validate() error {
	if c.HourFrom < 0 || c.HourFrom > 23 || c.HourTo < 0 || c.HourTo > 23 {
		return fmt.Errorf("hour range [%d,%d] outside 0-23", c.HourFrom, c.HourTo)
	}
	if c.HourFrom > c.HourTo {
		return fmt.Errorf("hour range [%d,%d] inverted", c.HourFrom, c.HourTo)
	}
	for _, cat := range c.Categories {
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", cat)
		}
	}
	return nil
}

// FilteredView is the subset of an EventSet matching some criteria. An
// empty Records slice is a valid state, distinct from "no filter
// applied" because the criteria travel with the view.
type FilteredView struct {
	Criteria FilterCriteria `json:"criteria"`
	Records  []EventRecord  `json:"records"`
}

// Empty reports whether no records matched.
func (v FilteredView) Empty() bool {
	return len(v.Records) == 0
}

// ByCategory partitions the view's records preserving order. Categories
// with no records are absent from the map.
func (v FilteredView) ByCategory() map[Category][]EventRecord {
	out := make(map[Category][]EventRecord)
	for _, rec := range v.Records {
		out[rec.Category] = append(out[rec.Category], rec)
	}
	return out
}

// Filter selects records with the exact date, hour within the inclusive
// range, and category in the subset. The underlying set is not mutated.
func Filter(set *EventSet, criteria FilterCriteria) FilteredView {
	date := DateOf(criteria.Date)
	wanted := make(map[Category]bool, len(criteria.Categories))
	for _, cat := range criteria.Categories {
		wanted[cat] = true
	}

	var records []EventRecord
	for _, rec := range set.Records {
		if !wanted[rec.Category] {
			continue
		}
		if rec.Hour < criteria.HourFrom || rec.Hour > criteria.HourTo {
			continue
		}
		if !rec.Date().Equal(date) {
			continue
		}
		records = append(records, rec)
	}
	return FilteredView{Criteria: criteria, Records: records}
}

// CategorySummary aggregates the filtered records of one category.
type CategorySummary struct {
	Category      Category `json:"category"`
	Label         string   `json:"label"`
	MeanIntensity float64  `json:"mean_intensity"`
	MaxIntensity  float64  `json:"max_intensity"`
	Locations     []string `json:"locations"`
	Areas         []string `json:"areas"`
}

// Summary is the structured digest of a filtered view, the input to the
// AI prompt. Categories without records are omitted entirely.
type Summary struct {
	Region     string            `json:"region"`
	Date       time.Time         `json:"date"`
	DayName    string            `json:"day_name"`
	HourFrom   int               `json:"hour_from"`
	HourTo     int               `json:"hour_to"`
	RainfallMM float64           `json:"rainfall_mm"`
	Categories []CategorySummary `json:"categories"`
}

// Empty reports whether no category had any activity.
func (s Summary) Empty() bool {
	return len(s.Categories) == 0
}

// Summarize digests a filtered view against its full set. The set
// supplies the daily rainfall for the selected date even when the view
// itself is empty.
func Summarize(set *EventSet, view FilteredView) Summary {
	date := DateOf(view.Criteria.Date)
	rainfall, _ := set.RainfallOn(date)

	s := Summary{
		Region:     set.Region,
		Date:       date,
		DayName:    DayName(MondayIndexed(date.Weekday())),
		HourFrom:   view.Criteria.HourFrom,
		HourTo:     view.Criteria.HourTo,
		RainfallMM: rainfall,
	}

	byCat := view.ByCategory()
	for _, cat := range Categories() {
		recs := byCat[cat]
		if len(recs) == 0 {
			continue
		}
		s.Categories = append(s.Categories, summarizeCategory(cat, recs))
	}
	return s
}

func summarizeCategory(cat Category, recs []EventRecord) CategorySummary {
	var sum, max float64
	locations := map[string]bool{}
	areas := map[string]bool{}
	for _, rec := range recs {
		sum += rec.Intensity
		if rec.Intensity > max {
			max = rec.Intensity
		}
		locations[rec.LocationName] = true
		areas[rec.Area] = true
	}
	return CategorySummary{
		Category:      cat,
		Label:         cat.Label(),
		MeanIntensity: sum / float64(len(recs)),
		MaxIntensity:  max,
		Locations:     sortedKeys(locations),
		Areas:         sortedKeys(areas),
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
