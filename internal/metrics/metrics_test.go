package metrics

import (
	"testing"

	pkgmetrics "github.com/haguru/blogd/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m := pkgmetrics.NewMetrics("test_service")
	Register(m)

	m.IncCounterVec(HTTPRequestsTotal, "GET", "/blog", "200")
	m.ObserveHistogramVec(HTTPRequestDuration, 0.01, "GET", "/blog")
	m.IncCounterVec(LoginAttempts, ResultSuccess)

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	tests := []string{
		"test_service_" + HTTPRequestsTotal,
		"test_service_" + HTTPRequestDuration,
		"test_service_" + HTTPInFlight,
		"test_service_" + UsersRegistered,
		"test_service_" + LoginAttempts,
		"test_service_" + PostsCreated,
		"test_service_" + SessionsActive,
	}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, names[name], "metric %s not gathered", name)
		})
	}
}

func TestRegister_Twice(t *testing.T) {
	m := pkgmetrics.NewMetrics("test_service")
	Register(m)

	assert.Panics(t, func() { Register(m) })
}
