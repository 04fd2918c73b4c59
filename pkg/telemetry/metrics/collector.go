package metrics

import (
	"net/http"

	"gravitas-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the Prometheus registry and the typed metric groups.
type Collector struct {
	registry *prometheus.Registry

	// Evaluations tracks profile evaluation metrics.
	Evaluations *EvaluationMetrics

	// Planner tracks planner run metrics.
	Planner *PlannerMetrics
}

// NewCollector creates a collector with all metric groups registered.
// When registry is nil a fresh registry is created, pre-populated with the
// standard Go runtime and process collectors.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Collector{
		registry:    registry,
		Evaluations: NewEvaluationMetrics(cfg, registry),
		Planner:     NewPlannerMetrics(cfg, registry),
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
//
// The handler exposes all registered metrics in the standard Prometheus
// exposition format and should be mounted at the configured metrics path
// (typically "/metrics").
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}
