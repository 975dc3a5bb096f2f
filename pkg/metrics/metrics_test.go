package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("blogd").(*Metrics)

	m.RegisterCounter("posts_created_total", "posts created")
	m.RegisterCounterVec("logins_total", "login attempts", []string{"result"})

	m.IncCounter("posts_created_total")
	m.IncCounter("posts_created_total")
	m.IncCounter("unknown_total")
	m.IncCounterVec("logins_total", "success")
	m.IncCounterVec("logins_total", "failure")
	m.IncCounterVec("logins_total", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.counters["posts_created_total"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.counterVecs["logins_total"].WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.counterVecs["logins_total"].WithLabelValues("failure")))
}

func TestMetrics_GaugeAndHistogram(t *testing.T) {
	m := NewMetrics("blogd").(*Metrics)

	m.RegisterGauge("http_requests_in_flight", "in flight")
	m.RegisterHistogramVec("http_request_duration_seconds", "latency", nil, []string{"route"})

	m.IncGauge("http_requests_in_flight")
	m.IncGauge("http_requests_in_flight")
	m.DecGauge("http_requests_in_flight")
	m.ObserveHistogramVec("http_request_duration_seconds", 0.25, "/blog")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gauges["http_requests_in_flight"]))
	assert.Equal(t, 1, testutil.CollectAndCount(m.histogramVecs["http_request_duration_seconds"]))
}

func TestMetrics_Namespace(t *testing.T) {
	m := NewMetrics("blogd")
	m.RegisterCounter("users_registered_total", "users")

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["blogd_users_registered_total"])
	assert.True(t, names["go_goroutines"])
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	m := NewMetrics("blogd")
	m.RegisterCounter("dup_total", "first")

	assert.Panics(t, func() { m.RegisterCounter("dup_total", "second") })
}
