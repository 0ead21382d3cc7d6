package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/pkg/errors"
)

// CollectorConfig holds configuration for the collector.
type CollectorConfig struct {
	Namespace            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
	ConstLabels          map[string]string
}

// ConfigFrom maps the metrics config section onto a CollectorConfig with the
// runtime collectors enabled.
func ConfigFrom(cfg config.MetricsConfig) CollectorConfig {
	ns := cfg.Namespace
	if ns == "" {
		ns = config.DefaultMetricsNamespace
	}
	return CollectorConfig{Namespace: ns, EnableProcessMetrics: true, EnableGoMetrics: true}
}

// Collector owns a private registry so tests and multiple servers in one
// process never collide on the global default registry.
type Collector struct {
	registry *prometheus.Registry
	cfg      CollectorConfig
}

func NewCollector(cfg CollectorConfig) (*Collector, error) {
	if cfg.Namespace == "" {
		return nil, errors.InvalidParam("metrics namespace is required")
	}
	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(collectors.NewGoCollector())
	}
	return &Collector{registry: registry, cfg: cfg}, nil
}

// Handler serves the registry in the Prometheus text or OpenMetrics format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	v := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.cfg.Namespace, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	c.registry.MustRegister(v)
	return v
}

func (c *Collector) counter(name, help string) prometheus.Counter {
	v := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: c.cfg.Namespace, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	})
	c.registry.MustRegister(v)
	return v
}

func (c *Collector) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	v := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.cfg.Namespace, Name: name, Help: help, Buckets: buckets, ConstLabels: c.cfg.ConstLabels,
	}, labels)
	c.registry.MustRegister(v)
	return v
}

func (c *Collector) gauge(name, help string) prometheus.Gauge {
	v := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: c.cfg.Namespace, Name: name, Help: help, ConstLabels: c.cfg.ConstLabels,
	})
	c.registry.MustRegister(v)
	return v
}

//Personal.AI order the ending
