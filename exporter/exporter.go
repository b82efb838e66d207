package exporter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/macsmc/smc/sensors"
)

// Exporter binds a Collector to its own registry and serves it over HTTP.
type Exporter struct {
	registry  *prometheus.Registry
	collector *Collector
}

// New creates an exporter for the given reader.
func New(reader *sensors.Reader) *Exporter {
	registry := prometheus.NewRegistry()
	collector := NewCollector(reader)
	registry.MustRegister(collector)

	return &Exporter{
		registry:  registry,
		collector: collector,
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
