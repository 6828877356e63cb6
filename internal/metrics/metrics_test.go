package metrics

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculation(t *testing.T) {
	r := New()

	r.Calculation("remote", 20*time.Millisecond)
	r.Calculation("local", time.Millisecond)
	r.Calculation("local", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.calculations.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.calculations.WithLabelValues("local")))

	family := findFamily(t, r, "stemwijzer_calculation_duration_seconds")
	var total uint64
	for _, m := range family.GetMetric() {
		total += m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(3), total)
}

func TestRemoteFailureAndStatusCounters(t *testing.T) {
	r := New()

	r.RemoteFailure("transport")
	r.RemoteFailure("transport")
	r.FavoriteUpdate(true)
	r.FavoriteUpdate(false)
	r.FixtureReload(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.remoteFailures.WithLabelValues("transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.favoriteUpdates.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.favoriteUpdates.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fixtureReloads.WithLabelValues("error")))
}

func TestHTTPRequest(t *testing.T) {
	r := New()

	r.HTTPRequest(http.MethodPost, "/api/stemwijzer/calculate", http.StatusOK, time.Millisecond)
	r.HTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("POST", "/api/stemwijzer/calculate", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	r.Calculation("local", time.Second)
	r.RemoteFailure("status")
	r.FavoriteUpdate(true)
	r.FixtureReload(true)
	r.HTTPRequest("GET", "/", 200, time.Second)
	r.TrackFavorites(nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackFavorites(t *testing.T) {
	r := New()
	stored := 3
	r.TrackFavorites(func(context.Context) (int, error) { return stored, nil })

	family := findFamily(t, r, "stemwijzer_favorite_parties")
	require.Len(t, family.GetMetric(), 1)
	assert.Equal(t, 3.0, family.GetMetric()[0].GetGauge().GetValue())

	stored = 5
	family = findFamily(t, r, "stemwijzer_favorite_parties")
	assert.Equal(t, 5.0, family.GetMetric()[0].GetGauge().GetValue())
}

func TestTrackFavoritesCountError(t *testing.T) {
	r := New()
	r.TrackFavorites(func(context.Context) (int, error) { return 0, errors.New("database is closed") })

	family := findFamily(t, r, "stemwijzer_favorite_parties")
	assert.True(t, math.IsNaN(family.GetMetric()[0].GetGauge().GetValue()))
}

func TestHandler(t *testing.T) {
	r := New()
	r.RemoteFailure("malformed")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stemwijzer_remote_failures_total{reason="malformed"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func findFamily(t *testing.T, r *Recorder, name string) *dto.MetricFamily {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %s not found", name)
	return nil
}
