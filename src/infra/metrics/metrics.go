// Package metrics counts tournament activity with Prometheus collectors.
// There is no HTTP endpoint; Flush writes the registry to a textfile for
// the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements tournaments.Metrics.
type Recorder struct {
	registry *prometheus.Registry
	path     string

	commands     *prometheus.CounterVec
	rounds       prometheus.Counter
	roundMatches prometheus.Histogram
	rematches    prometheus.Counter
	completed    prometheus.Counter
	saveFailures prometheus.Counter
}

// NewRecorder registers the collectors on a private registry. An empty
// path makes Flush a no-op.
func NewRecorder(path string) *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry(), path: path}
	r.commands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "duotcg",
		Subsystem: "tournament",
		Name:      "commands_total",
		Help:      "Operator commands by outcome",
	}, []string{"command", "outcome"})
	r.rounds = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "duotcg",
		Subsystem: "tournament",
		Name:      "rounds_generated_total",
		Help:      "Rounds paired",
	})
	r.roundMatches = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "duotcg",
		Subsystem: "tournament",
		Name:      "round_matches",
		Help:      "Matches per generated round, byes included",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
	r.rematches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "duotcg",
		Subsystem: "tournament",
		Name:      "rematches_total",
		Help:      "Swiss pairings that repeated an earlier meeting",
	})
	r.completed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "duotcg",
		Subsystem: "tournament",
		Name:      "matches_completed_total",
		Help:      "Matches with both games decided",
	})
	r.saveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "duotcg",
		Subsystem: "store",
		Name:      "save_failures_total",
		Help:      "Snapshots that could not be written",
	})
	r.registry.MustRegister(r.commands, r.rounds, r.roundMatches, r.rematches, r.completed, r.saveFailures)
	return r
}

func (r *Recorder) CommandHandled(command, outcome string) {
	r.commands.WithLabelValues(command, outcome).Inc()
}

func (r *Recorder) RoundGenerated(matches, repeats int) {
	r.rounds.Inc()
	r.roundMatches.Observe(float64(matches))
	r.rematches.Add(float64(repeats))
}

func (r *Recorder) MatchCompleted() {
	r.completed.Inc()
}

func (r *Recorder) SaveFailed() {
	r.saveFailures.Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Flush writes the current values to the textfile.
func (r *Recorder) Flush() error {
	if r.path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(r.path, r.registry)
}
