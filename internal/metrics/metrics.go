package metrics

import (
	"github.com/haguru/blogd/internal/interfaces"
)

const (
	HTTPRequestsTotal   = "http_requests_total"
	HTTPRequestDuration = "http_request_duration_seconds"
	HTTPInFlight        = "http_requests_in_flight"

	UsersRegistered = "users_registered_total"
	LoginAttempts   = "login_attempts_total"
	PostsCreated    = "posts_created_total"
	SessionsActive  = "sessions_active"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Register declares every metric the service reports on m.
func Register(m interfaces.Metrics) {
	m.RegisterCounterVec(HTTPRequestsTotal, "Total number of HTTP requests", []string{"method", "route", "status"})
	m.RegisterHistogramVec(HTTPRequestDuration, "HTTP request latency in seconds", nil, []string{"method", "route"})
	m.RegisterGauge(HTTPInFlight, "Number of HTTP requests being served")

	m.RegisterCounter(UsersRegistered, "Total number of registered users")
	m.RegisterCounterVec(LoginAttempts, "Total number of login attempts", []string{"result"})
	m.RegisterCounter(PostsCreated, "Total number of created blog posts")
	m.RegisterGauge(SessionsActive, "Sessions established minus sessions ended by logout or seen expired since start")
}
