package metrics

import (
	"sync"

	"github.com/haguru/blogd/internal/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics is a registry-backed Prometheus collector keyed by metric name.
// Every metric is registered under the service namespace.
type Metrics struct {
	Registry      *prometheus.Registry
	namespace     string
	mu            sync.RWMutex
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	histogramVecs map[string]*prometheus.HistogramVec
	gauges        map[string]prometheus.Gauge
}

// NewMetrics creates a Metrics instance with the Go runtime and process
// collectors already registered.
func NewMetrics(serviceName string) interfaces.Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		Registry:      registry,
		namespace:     serviceName,
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
		gauges:        make(map[string]prometheus.Gauge),
	}
}

// GetRegistry returns the Prometheus registry.
func (m *Metrics) GetRegistry() *prometheus.Registry {
	return m.Registry
}

// RegisterCounter registers a new counter metric.
func (m *Metrics) RegisterCounter(name, help string) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	})
	m.Registry.MustRegister(counter)

	m.mu.Lock()
	m.counters[name] = counter
	m.mu.Unlock()
}

// RegisterCounterVec registers a new counter metric with labels.
func (m *Metrics) RegisterCounterVec(name, help string, labels []string) {
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}, labels)
	m.Registry.MustRegister(counterVec)

	m.mu.Lock()
	m.counterVecs[name] = counterVec
	m.mu.Unlock()
}

// RegisterHistogramVec registers a new histogram metric with labels.
// Nil buckets use the Prometheus defaults.
func (m *Metrics) RegisterHistogramVec(name, help string, buckets []float64, labels []string) {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	m.Registry.MustRegister(histogramVec)

	m.mu.Lock()
	m.histogramVecs[name] = histogramVec
	m.mu.Unlock()
}

// RegisterGauge registers a new gauge metric.
func (m *Metrics) RegisterGauge(name, help string) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	})
	m.Registry.MustRegister(gauge)

	m.mu.Lock()
	m.gauges[name] = gauge
	m.mu.Unlock()
}

// IncCounter increments a counter by 1. Unknown names are ignored.
func (m *Metrics) IncCounter(name string) {
	m.mu.RLock()
	counter, ok := m.counters[name]
	m.mu.RUnlock()
	if ok {
		counter.Inc()
	}
}

// IncCounterVec increments a counter in a CounterVec with labels.
func (m *Metrics) IncCounterVec(name string, labels ...string) {
	m.mu.RLock()
	counterVec, ok := m.counterVecs[name]
	m.mu.RUnlock()
	if ok {
		counterVec.WithLabelValues(labels...).Inc()
	}
}

// ObserveHistogramVec observes a value in a histogram with labels.
func (m *Metrics) ObserveHistogramVec(name string, value float64, labels ...string) {
	m.mu.RLock()
	histogramVec, ok := m.histogramVecs[name]
	m.mu.RUnlock()
	if ok {
		histogramVec.WithLabelValues(labels...).Observe(value)
	}
}

// IncGauge increments a gauge by 1.
func (m *Metrics) IncGauge(name string) {
	m.mu.RLock()
	gauge, ok := m.gauges[name]
	m.mu.RUnlock()
	if ok {
		gauge.Inc()
	}
}

// DecGauge decrements a gauge by 1.
func (m *Metrics) DecGauge(name string) {
	m.mu.RLock()
	gauge, ok := m.gauges[name]
	m.mu.RUnlock()
	if ok {
		gauge.Dec()
	}
}
