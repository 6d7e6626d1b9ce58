// Package metrics exposes engine counters through Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	pieterrors "github.com/go-drift/piet/pkg/errors"
)

// Recorder counts recycler pool traffic, style cache lookups, frame binds
// and fatal errors. A nil *Recorder records nothing.
type Recorder struct {
	poolLookups  *prometheus.CounterVec
	poolPurges   prometheus.Counter
	styleCache   *prometheus.CounterVec
	frameBinds   *prometheus.CounterVec
	fatalErrors  *prometheus.CounterVec
	bindDuration prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		poolLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "piet_recycler_pool_lookups_total",
			Help: "Recycler pool lookups by pool and result (hit or miss).",
		}, []string{"pool", "result"}),
		poolPurges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "piet_recycler_pool_purges_total",
			Help: "Number of times all recycler pools were purged.",
		}),
		styleCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "piet_styles_helper_cache_total",
			Help: "Styles helper cache lookups by result (hit or miss).",
		}, []string{"result"}),
		frameBinds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "piet_frame_binds_total",
			Help: "Frame binds by result (ok or error).",
		}, []string{"result"}),
		fatalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "piet_fatal_errors_total",
			Help: "Fatal errors caught at the frame boundary by code.",
		}, []string{"code"}),
		bindDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "piet_frame_bind_duration_seconds",
			Help:    "Time spent binding a frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	if reg != nil {
		for _, c := range r.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *Recorder) collectors() []prometheus.Collector {
	return []prometheus.Collector{r.poolLookups, r.poolPurges, r.styleCache, r.frameBinds, r.fatalErrors, r.bindDuration}
}

// PoolLookup records a recycler pool lookup.
func (r *Recorder) PoolLookup(pool string, hit bool) {
	if r == nil {
		return
	}
	r.poolLookups.WithLabelValues(pool, result(hit)).Inc()
}

// PoolPurge records a purge of all pools.
func (r *Recorder) PoolPurge() {
	if r == nil {
		return
	}
	r.poolPurges.Inc()
}

// StyleCacheLookup records a styles helper cache lookup.
func (r *Recorder) StyleCacheLookup(hit bool) {
	if r == nil {
		return
	}
	r.styleCache.WithLabelValues(result(hit)).Inc()
}

// FrameBind records a completed frame bind and its duration in seconds.
func (r *Recorder) FrameBind(ok bool, seconds float64) {
	if r == nil {
		return
	}
	label := "ok"
	if !ok {
		label = "error"
	}
	r.frameBinds.WithLabelValues(label).Inc()
	r.bindDuration.Observe(seconds)
}

// FatalError records a fatal error caught at the frame boundary.
func (r *Recorder) FatalError(code pieterrors.ErrorCode) {
	if r == nil {
		return
	}
	r.fatalErrors.WithLabelValues(code.String()).Inc()
}

func result(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
