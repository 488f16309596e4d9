package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"observation-quiz/internal/domain"
)

// Metrics collects generation counters for one run.
type Metrics struct {
	registry *prometheus.Registry

	ItemsTotal     *prometheus.CounterVec
	ObjectsTotal   *prometheus.CounterVec
	ImagesRemoved  prometheus.Counter
	RunDuration    prometheus.Gauge
	LastRunSuccess prometheus.Gauge
}

// NewMetrics creates and registers the generator metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "observation_items_total",
				Help: "Number of quiz items generated",
			},
			[]string{"difficulty", "target"},
		),
		ObjectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "observation_objects_total",
				Help: "Number of objects placed on scenes",
			},
			[]string{"shape", "role"},
		),
		ImagesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "observation_stale_images_removed_total",
			Help: "Number of previously generated images removed before writing",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "observation_generation_duration_seconds",
			Help: "Wall time of the last generation run",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "observation_generation_success",
			Help: "1 if the last generation run completed, 0 otherwise",
		}),
	}
	m.registry.MustRegister(m.ItemsTotal, m.ObjectsTotal, m.ImagesRemoved, m.RunDuration, m.LastRunSuccess)
	return m
}

// ObserveScene records one generated item and its objects.
func (m *Metrics) ObserveScene(d domain.Difficulty, s *domain.Scene) {
	m.ItemsTotal.WithLabelValues(d.String(), s.Target.Name()).Inc()
	for _, o := range s.Objects {
		role := "distractor"
		if o.Kind == s.Target {
			role = "target"
		}
		m.ObjectsTotal.WithLabelValues(o.Kind.Name(), role).Inc()
	}
}

// WriteTextfile writes the current values in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
