package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopredictor/geopredictor-api/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	generatedAt := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rec := domain.EventRecord{
		ID:           "traffic-1a2b3c4d5e6f7a8b",
		Category:     domain.CategoryTraffic,
		LocationName: "Av. Epitácio Pessoa (Centro)",
		Area:         "Traffic Area",
		Geo:          domain.Geo{Lat: -7.1195, Lon: -34.8641},
		Timestamp:    time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC),
		Hour:         17,
		DayOfWeek:    1,
		Intensity:    9.4,
		RainfallMM:   5,
	}

	msg, err := serializeToMessage(rec, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, []byte("traffic-1a2b3c4d5e6f7a8b"), msg.Key)
	assert.Contains(t, string(msg.Value), `"category":"traffic"`)
	assert.Contains(t, string(msg.Value), `"rainfall_mm":5`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "category", msg.Headers[0].Key)
	assert.Equal(t, []byte("traffic"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-06-10T12:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_KeyIsDeterministicID(t *testing.T) {
	rec := domain.EventRecord{ID: "flood-00ff00ff00ff00ff", Category: domain.CategoryFlood}

	first, err := serializeToMessage(rec, time.Now())
	require.NoError(t, err)
	second, err := serializeToMessage(rec, time.Now())
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key)
}

func TestExportSet_EmptySetIsNoop(t *testing.T) {
	w := &Writer{}

	err := w.ExportSet(t.Context(), &domain.EventSet{})
	assert.NoError(t, err)
}
