package middleware

import (
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/metrics"
	"github.com/haguru/blogd/internal/models/dto"
)

// RequestLogger logs every request and records the HTTP metrics. Metrics may be nil.
func RequestLogger(logger interfaces.Logger, m interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeLabel(r)
			if m != nil {
				m.IncGauge(metrics.HTTPInFlight)
				defer m.DecGauge(metrics.HTTPInFlight)
			}

			snoop := httpsnoop.CaptureMetrics(next, w, r)

			if m != nil {
				m.IncCounterVec(metrics.HTTPRequestsTotal, r.Method, route, strconv.Itoa(snoop.Code))
				m.ObserveHistogramVec(metrics.HTTPRequestDuration, snoop.Duration.Seconds(), r.Method, route)
			}
			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", snoop.Code,
				"bytes", snoop.Written,
				"duration", snoop.Duration.String(),
			)
		})
	}
}

// Recoverer turns a handler panic into a 500 JSON error.
func Recoverer(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("Recovered from panic", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
					WriteJSON(w, http.StatusInternalServerError, &dto.ErrorResponseDTO{Error: MsgInternalError})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// routeLabel keeps metric cardinality bounded by using the route template.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return unmatchedRouteLabel
}
