// Package render maps filtered event records onto the declarative layer
// model consumed by the deck.gl dashboard frontend. It owns the
// category→color/elevation encodings and the camera state; it never
// renders anything itself.
package render

import (
	"github.com/geopredictor/geopredictor-api/internal/domain"
)

// LayerType names the visual primitive the frontend instantiates.
type LayerType string

const (
	LayerColumn      LayerType = "ColumnLayer"
	LayerScatterplot LayerType = "ScatterplotLayer"
)

// RGBA is a 0-255 color quadruplet in deck.gl order.
type RGBA [4]uint8

// Camera is the initial view state over the selected region.
type Camera struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Zoom    int     `json:"zoom"`
	Pitch   int     `json:"pitch"`
	Bearing int     `json:"bearing"`
}

// Point is one renderable record with its encoding resolved.
type Point struct {
	ID           string  `json:"id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	LocationName string  `json:"location_name"`
	Intensity    float64 `json:"intensity"`
	RainfallMM   float64 `json:"rainfall_mm"`
	Color        RGBA    `json:"color"`
	Elevation    float64 `json:"elevation,omitempty"`
	Radius       float64 `json:"radius"`
}

// Layer is one visual layer per category present in the filtered view.
type Layer struct {
	Type     LayerType       `json:"type"`
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
	Extruded bool            `json:"extruded"`
	Points   []Point         `json:"points"`
}

// MapSpec is the full rendering payload: camera plus zero or more
// layers. Empty=true is the explicit "nothing to display" state.
type MapSpec struct {
	Camera Camera  `json:"camera"`
	Layers []Layer `json:"layers"`
	Empty  bool    `json:"empty"`
}

// NewCamera builds the default tilted view over a region.
func NewCamera(r domain.Region) Camera {
	return Camera{
		Lat:     r.Center.Lat,
		Lon:     r.Center.Lon,
		Zoom:    r.Zoom,
		Pitch:   50,
		Bearing: 0,
	}
}

// BuildMapSpec encodes a filtered view for the frontend. Categories with
// no matching records produce no layer.
func BuildMapSpec(region domain.Region, view domain.FilteredView) MapSpec {
	spec := MapSpec{Camera: NewCamera(region), Empty: view.Empty()}

	byCat := view.ByCategory()
	for _, cat := range domain.Categories() {
		recs := byCat[cat]
		if len(recs) == 0 {
			continue
		}
		spec.Layers = append(spec.Layers, buildLayer(cat, recs))
	}
	return spec
}

func buildLayer(cat domain.Category, recs []domain.EventRecord) Layer {
	layer := Layer{
		Type:     LayerColumn,
		Category: cat,
		Label:    cat.Label(),
		Extruded: true,
		Points:   make([]Point, 0, len(recs)),
	}
	if cat == domain.CategoryTourist {
		layer.Type = LayerScatterplot
		layer.Extruded = false
	}

	for _, rec := range recs {
		layer.Points = append(layer.Points, encodePoint(cat, rec))
	}
	return layer
}

func encodePoint(cat domain.Category, rec domain.EventRecord) Point {
	p := Point{
		ID:           rec.ID,
		Lat:          rec.Geo.Lat,
		Lon:          rec.Geo.Lon,
		LocationName: rec.LocationName,
		Intensity:    rec.Intensity,
		RainfallMM:   rec.RainfallMM,
	}

	switch cat {
	case domain.CategoryTraffic:
		p.Color = trafficColor(rec.Intensity)
		p.Elevation = rec.Intensity * 50
		p.Radius = 40
	case domain.CategoryFlood:
		p.Color = floodColor(rec.Intensity)
		p.Elevation = rec.Intensity * 60
		p.Radius = 40
	case domain.CategoryTourist:
		p.Color = touristColor(rec.Intensity)
		p.Radius = rec.Intensity*8 + 20
	}
	return p
}

// Color ladders on the [0,10] intensity scale.

func trafficColor(intensity float64) RGBA {
	switch {
	case intensity >= 7:
		return RGBA{255, 0, 0, 230} // heavy
	case intensity >= 4:
		return RGBA{255, 140, 0, 200} // moderate
	default:
		return RGBA{0, 200, 0, 180} // light
	}
}

func touristColor(intensity float64) RGBA {
	switch {
	case intensity >= 7:
		return RGBA{0, 0, 200, 230}
	case intensity >= 4:
		return RGBA{0, 100, 255, 200}
	default:
		return RGBA{100, 200, 255, 180}
	}
}

func floodColor(intensity float64) RGBA {
	switch {
	case intensity >= 8:
		return RGBA{178, 34, 34, 230} // critical
	case intensity >= 5:
		return RGBA{255, 69, 0, 200} // high
	case intensity >= 2:
		return RGBA{255, 215, 0, 180} // moderate
	default:
		return RGBA{30, 144, 255, 160} // low
	}
}
