package render

import (
	"testing"
	"time"

	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegion() domain.Region {
	return domain.Region{
		Name:   "João Pessoa, PB",
		Center: domain.Geo{Lat: -7.1197, Lon: -34.8450},
		Zoom:   12,
	}
}

func testRecord(cat domain.Category, intensity float64) domain.EventRecord {
	return domain.EventRecord{
		ID:           string(cat) + "-abc123",
		Category:     cat,
		LocationName: "Somewhere",
		Area:         cat.AreaLabel(),
		Geo:          domain.Geo{Lat: -7.11, Lon: -34.84},
		Timestamp:    time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC),
		Hour:         17,
		Intensity:    intensity,
	}
}

func TestNewCamera(t *testing.T) {
	cam := NewCamera(testRegion())

	assert.Equal(t, -7.1197, cam.Lat)
	assert.Equal(t, -34.8450, cam.Lon)
	assert.Equal(t, 12, cam.Zoom)
	assert.Equal(t, 50, cam.Pitch)
	assert.Equal(t, 0, cam.Bearing)
}

func TestBuildMapSpec_LayerPerPresentCategory(t *testing.T) {
	view := domain.FilteredView{Records: []domain.EventRecord{
		testRecord(domain.CategoryTraffic, 8),
		testRecord(domain.CategoryTourist, 5),
	}}

	spec := BuildMapSpec(testRegion(), view)

	assert.False(t, spec.Empty)
	require.Len(t, spec.Layers, 2)

	traffic := spec.Layers[0]
	assert.Equal(t, domain.CategoryTraffic, traffic.Category)
	assert.Equal(t, LayerColumn, traffic.Type)
	assert.True(t, traffic.Extruded)
	assert.Equal(t, "Heavy Traffic", traffic.Label)

	tourist := spec.Layers[1]
	assert.Equal(t, domain.CategoryTourist, tourist.Category)
	assert.Equal(t, LayerScatterplot, tourist.Type)
	assert.False(t, tourist.Extruded)
}

func TestBuildMapSpec_EmptyView(t *testing.T) {
	spec := BuildMapSpec(testRegion(), domain.FilteredView{})

	assert.True(t, spec.Empty)
	assert.Empty(t, spec.Layers)
	assert.Equal(t, 12, spec.Camera.Zoom)
}

func TestEncodePoint_Traffic(t *testing.T) {
	p := encodePoint(domain.CategoryTraffic, testRecord(domain.CategoryTraffic, 8))

	assert.Equal(t, RGBA{255, 0, 0, 230}, p.Color)
	assert.Equal(t, 400.0, p.Elevation)
	assert.Equal(t, 40.0, p.Radius)
}

func TestEncodePoint_Flood(t *testing.T) {
	p := encodePoint(domain.CategoryFlood, testRecord(domain.CategoryFlood, 6))

	assert.Equal(t, RGBA{255, 69, 0, 200}, p.Color)
	assert.Equal(t, 360.0, p.Elevation)
	assert.Equal(t, 40.0, p.Radius)
}

func TestEncodePoint_Tourist(t *testing.T) {
	p := encodePoint(domain.CategoryTourist, testRecord(domain.CategoryTourist, 5))

	assert.Equal(t, RGBA{0, 100, 255, 200}, p.Color)
	assert.Zero(t, p.Elevation)
	assert.Equal(t, 60.0, p.Radius)
}

func TestTrafficColorThresholds(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		expected  RGBA
	}{
		{"heavy", 7, RGBA{255, 0, 0, 230}},
		{"moderate", 4, RGBA{255, 140, 0, 200}},
		{"moderate upper", 6.9, RGBA{255, 140, 0, 200}},
		{"light", 3.9, RGBA{0, 200, 0, 180}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trafficColor(tt.intensity))
		})
	}
}

func TestFloodColorThresholds(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		expected  RGBA
	}{
		{"critical", 8, RGBA{178, 34, 34, 230}},
		{"high", 5, RGBA{255, 69, 0, 200}},
		{"moderate", 2, RGBA{255, 215, 0, 180}},
		{"low", 1.9, RGBA{30, 144, 255, 160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, floodColor(tt.intensity))
		})
	}
}

func TestTouristColorThresholds(t *testing.T) {
	assert.Equal(t, RGBA{0, 0, 200, 230}, touristColor(9))
	assert.Equal(t, RGBA{0, 100, 255, 200}, touristColor(4.5))
	assert.Equal(t, RGBA{100, 200, 255, 180}, touristColor(1))
}
