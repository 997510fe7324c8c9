// Package metrics exposes Prometheus counters for tracker actions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the counters the HTTP layer updates.
type Metrics struct {
	registry       *prometheus.Registry
	EntriesAdded   prometheus.Counter
	EntriesDeleted prometheus.Counter
	GoalSaves      prometheus.Counter
	Invalid        *prometheus.CounterVec
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		EntriesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weightlog_entries_added_total",
			Help: "Weight records added.",
		}),
		EntriesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weightlog_entries_deleted_total",
			Help: "Weight records deleted.",
		}),
		GoalSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weightlog_goal_saves_total",
			Help: "Goal weights saved.",
		}),
		Invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weightlog_invalid_input_total",
			Help: "Rejected or ignored inputs by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.EntriesAdded, m.EntriesDeleted, m.GoalSaves, m.Invalid)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
