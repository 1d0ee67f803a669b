package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apteka/internal/common"
	"github.com/ternarybob/apteka/internal/models"
)

var warsaw = models.Coordinate{Latitude: 52.23, Longitude: 21.01}

func newTestConfig(baseURL string) *common.OverpassConfig {
	return &common.OverpassConfig{
		BaseURL:        baseURL,
		UserAgent:      "apteka-test",
		QueryTimeout:   25,
		RequestTimeout: 2 * time.Second,
	}
}

func newStubServer(t *testing.T, status int, body string, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestBuildQuery(t *testing.T) {
	req := SearchRequest{Center: warsaw, Radius: 2000, Category: "pharmacy"}

	assert.Equal(t,
		`[out:json][timeout:25];node["amenity"="pharmacy"](around:2000,52.23,21.01);out;`,
		BuildQuery(req, 25))
	assert.Equal(t,
		`[out:json];node["amenity"="pharmacy"](around:2000,52.23,21.01);out;`,
		BuildQuery(req, 0))
}

func TestSearch_ReturnsRecords(t *testing.T) {
	var gotQuery, gotMethod, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAgent = r.Header.Get("User-Agent")
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"version": 0.6,
			"generator": "Overpass API",
			"elements": [
				{"type": "node", "id": 101, "lat": 52.231, "lon": 21.012,
				 "tags": {"amenity": "pharmacy", "name": "Apteka Centralna", "opening_hours": "Mo-Fr 08:00-20:00"}},
				{"type": "node", "id": 102, "lat": 52.229, "lon": 21.009}
			]
		}`))
	}))
	defer server.Close()

	service := NewService(newTestConfig(server.URL), arbor.NewLogger())

	records, err := service.Search(context.Background(), warsaw, 2000, "pharmacy")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "apteka-test", gotAgent)
	assert.Equal(t, `[out:json][timeout:25];node["amenity"="pharmacy"](around:2000,52.23,21.01);out;`, gotQuery)

	assert.Equal(t, int64(101), records[0].ID)
	assert.Equal(t, "node", records[0].Type)
	assert.InDelta(t, 52.231, records[0].Latitude, 1e-9)
	assert.Equal(t, "Apteka Centralna", records[0].Tag("name"))

	assert.Equal(t, int64(102), records[1].ID)
	assert.NotNil(t, records[1].Tags, "records without tags get an empty tag map")
	assert.Equal(t, "", records[1].Tag("name"))
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	server := newStubServer(t, http.StatusOK, `{"version": 0.6, "elements": []}`, nil)
	service := NewService(newTestConfig(server.URL), arbor.NewLogger())

	records, err := service.Search(context.Background(), warsaw, 2000, "pharmacy")

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSearch_ServiceFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"gateway timeout", http.StatusGatewayTimeout, `<html>timeout</html>`},
		{"too many requests", http.StatusTooManyRequests, ``},
		{"bad request", http.StatusBadRequest, `parse error`},
		{"malformed json", http.StatusOK, `{"elements": [`},
		{"xml payload", http.StatusOK, `<?xml version="1.0"?><osm></osm>`},
		{"missing elements", http.StatusOK, `{"version": 0.6}`},
		{"runtime error remark", http.StatusOK, `{"elements": [], "remark": "runtime error: Query timed out in \"query\" at line 1 after 25 seconds."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newStubServer(t, tt.status, tt.body, nil)
			service := NewService(newTestConfig(server.URL), arbor.NewLogger())

			records, err := service.Search(context.Background(), warsaw, 2000, "pharmacy")

			assert.Nil(t, records)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrServiceUnavailable)

			var upstreamErr *models.UpstreamError
			require.True(t, errors.As(err, &upstreamErr))
			assert.Equal(t, "overpass", upstreamErr.Service)
		})
	}
}

func TestSearch_TimeoutIsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	config := newTestConfig(server.URL)
	config.RequestTimeout = 50 * time.Millisecond
	service := NewService(config, arbor.NewLogger())

	_, err := service.Search(context.Background(), warsaw, 2000, "pharmacy")
	assert.ErrorIs(t, err, models.ErrServiceUnavailable)
}

func TestSearch_RejectsInvalidParametersWithoutRequest(t *testing.T) {
	var calls int32
	server := newStubServer(t, http.StatusOK, `{"elements": []}`, &calls)
	service := NewService(newTestConfig(server.URL), arbor.NewLogger())

	tests := []struct {
		name     string
		radius   int
		category string
	}{
		{"zero radius", 0, "pharmacy"},
		{"negative radius", -5, "pharmacy"},
		{"empty category", 2000, ""},
		{"quote injection", 2000, `pharmacy"];node["shop`},
		{"uppercase", 2000, "Pharmacy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Search(context.Background(), warsaw, tt.radius, tt.category)
			assert.ErrorIs(t, err, models.ErrInvalidSearch)
			assert.False(t, errors.Is(err, models.ErrServiceUnavailable))
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
