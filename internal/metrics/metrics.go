// Package metrics exposes Prometheus collectors for scoring and the HTTP
// server.
package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stemwijzer"

// Recorder owns every collector of the process. Collectors live in their own
// registry so tests can build as many recorders as they need.
type Recorder struct {
	registry *prometheus.Registry

	calculations    *prometheus.CounterVec
	remoteFailures  *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	favoriteUpdates *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	fixtureReloads  *prometheus.CounterVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Completed match calculations by the source that produced the result.",
			},
			[]string{"source"},
		),
		remoteFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_failures_total",
				Help:      "Remote calculations that were rejected and fell back to the local scorer.",
			},
			[]string{"reason"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Time spent producing a match calculation.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		favoriteUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "favorite_party_updates_total",
				Help:      "Favorite party updates by outcome.",
			},
			[]string{"status"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served by route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		fixtureReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fixture_reloads_total",
				Help:      "Fixture reload attempts by outcome.",
			},
			[]string{"status"},
		),
	}
}

// Calculation records a finished calculation. A nil recorder is a no-op, as
// are the other methods.
func (r *Recorder) Calculation(source string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.calculations.WithLabelValues(source).Inc()
	r.duration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (r *Recorder) RemoteFailure(reason string) {
	if r == nil {
		return
	}
	r.remoteFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) FavoriteUpdate(ok bool) {
	if r == nil {
		return
	}
	r.favoriteUpdates.WithLabelValues(status(ok)).Inc()
}

func (r *Recorder) FixtureReload(ok bool) {
	if r == nil {
		return
	}
	r.fixtureReloads.WithLabelValues(status(ok)).Inc()
}

// HTTPRequest records a served request. Route is the matched pattern, not
// the raw path.
func (r *Recorder) HTTPRequest(method, route string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackFavorites exports the number of stored favorite parties as a gauge
// read through count on every scrape. Call it once per recorder.
func (r *Recorder) TrackFavorites(count func(context.Context) (int, error)) {
	if r == nil {
		return
	}
	promauto.With(r.registry).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorite_parties",
			Help:      "Users with a stored favorite party.",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			n, err := count(ctx)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		},
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
