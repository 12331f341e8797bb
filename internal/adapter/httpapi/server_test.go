package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopredictor/geopredictor-api/internal/config"
	"github.com/geopredictor/geopredictor-api/internal/domain"
	"github.com/geopredictor/geopredictor-api/internal/insight"
	"github.com/geopredictor/geopredictor-api/internal/observability"
	"github.com/geopredictor/geopredictor-api/internal/session"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateText(context.Context, string) (string, error) {
	return s.text, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:    ":0",
		CORSOrigins: []string{"*"},
		WindowStart: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		WindowEnd:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		SessionTTL:  30 * time.Minute,
	}
}

func newTestServer(t *testing.T, generator domain.TextGenerator) *Server {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 10, 17, 30, 0, 0, time.UTC))

	catalog := domain.NewCatalog()
	gen := domain.NewGenerator(catalog, rand.New(rand.NewSource(7)))
	sessions := session.NewStore(gen, nil, clock, cfg.SessionTTL, metrics, logger)
	insights := insight.NewService(generator, metrics, logger)

	return NewServer(cfg, catalog, sessions, insights, clock, logger)
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/v1/sessions")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body["session_id"])
	return body["session_id"]
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	s := newTestServer(t, &stubGenerator{text: "ok"})

	rec := doRequest(t, s, http.MethodGet, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ai_enabled":true`)
}

func TestRegions(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/regions")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Regions []domain.Region   `json:"regions"`
		Window  map[string]string `json:"window"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Len(t, body.Regions, 10)
	assert.Equal(t, domain.FeaturedRegion, body.Regions[0].Name)
	assert.Equal(t, "2025-06-04", body.Window["start"])
	assert.Equal(t, "2025-06-10", body.Window["end"])
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodDelete, "/api/v1/sessions/"+id)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/api/v1/sessions/"+id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvents(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodGet,
		"/api/v1/sessions/"+id+"/events?date=2025-06-10&from=17&to=19&categories=traffic")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Region  string               `json:"region"`
		Count   int                  `json:"count"`
		Records []domain.EventRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, domain.FeaturedRegion, body.Region)
	// 4 traffic locations over 3 inclusive hours.
	assert.Equal(t, 12, body.Count)
	for _, r := range body.Records {
		assert.Equal(t, domain.CategoryTraffic, r.Category)
	}
}

func TestEvents_DefaultsToCurrentHourAllCategories(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+id+"/events")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int `json:"count"`
		Criteria struct {
			HourFrom int `json:"hour_from"`
			HourTo   int `json:"hour_to"`
		} `json:"criteria"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Fake clock sits at 17:30, so the default range is the single hour 17
	// across all 11 featured locations.
	assert.Equal(t, 17, body.Criteria.HourFrom)
	assert.Equal(t, 17, body.Criteria.HourTo)
	assert.Equal(t, 11, body.Count)
}

func TestEvents_UnknownSession(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/api/v1/sessions/nope/events?date=2025-06-10")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvents_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	tests := []struct {
		name  string
		query string
	}{
		{"malformed date", "date=10/06/2025"},
		{"hour out of range", "from=0&to=24"},
		{"inverted hours", "from=19&to=17"},
		{"non-integer hour", "from=noon"},
		{"unknown category", "categories=earthquake"},
		{"unknown region", "region=Atlantis"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, "/api/v1/sessions/"+id+"/events?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEvents_SameScenarioIsStable(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	target := "/api/v1/sessions/" + id + "/events?date=2025-06-10&from=8&to=9"
	first := doRequest(t, s, http.MethodGet, target)
	second := doRequest(t, s, http.MethodGet, target)

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestMap(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodGet,
		"/api/v1/sessions/"+id+"/map?date=2025-06-10&from=17&to=19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Camera struct {
			Pitch int `json:"pitch"`
			Zoom  int `json:"zoom"`
		} `json:"camera"`
		Layers []struct {
			Type     string `json:"type"`
			Category string `json:"category"`
		} `json:"layers"`
		Empty bool `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.False(t, body.Empty)
	assert.Equal(t, 50, body.Camera.Pitch)
	assert.Equal(t, 12, body.Camera.Zoom)
	require.Len(t, body.Layers, 3)
	assert.Equal(t, "ColumnLayer", body.Layers[0].Type)
}

func TestMap_EmptyOutsideWindow(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodGet,
		"/api/v1/sessions/"+id+"/map?date=2030-01-01&from=8&to=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Empty  bool  `json:"empty"`
		Layers []any `json:"layers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Empty)
	assert.Empty(t, body.Layers)
}

func TestInsights(t *testing.T) {
	s := newTestServer(t, &stubGenerator{text: "Expect heavy congestion."})
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodPost,
		"/api/v1/sessions/"+id+"/insights?date=2025-06-10&from=17&to=19")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Insight string         `json:"insight"`
		Summary domain.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Expect heavy congestion.", body.Insight)
	assert.Equal(t, domain.FeaturedRegion, body.Summary.Region)
	assert.Equal(t, "Tuesday", body.Summary.DayName)
}

func TestInsights_Unavailable(t *testing.T) {
	s := newTestServer(t, nil)
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodPost,
		"/api/v1/sessions/"+id+"/insights?date=2025-06-10&from=17&to=19")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestInsights_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, &stubGenerator{err: errors.New("quota exceeded")})
	id := createSession(t, s)

	rec := doRequest(t, s, http.MethodPost,
		"/api/v1/sessions/"+id+"/insights?date=2025-06-10&from=17&to=19")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "quota exceeded")
}
