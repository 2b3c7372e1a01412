// Package metrics defines the Prometheus collectors exported by the talker node.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the node's collectors. Build one per registry with New.
type Metrics struct {
	// TicksTotal counts completed publish loop iterations.
	TicksTotal prometheus.Counter

	// Sequence is the sequence number of the last published chatter message.
	Sequence prometheus.Gauge

	// EffectiveFrequency is the validated publish rate in Hz.
	EffectiveFrequency prometheus.Gauge

	// MutationsTotal counts modifyTalkerMessage calls.
	MutationsTotal prometheus.Counter

	// PublishErrors counts transport failures by channel.
	PublishErrors *prometheus.CounterVec

	// QueueDropped counts messages evicted from a full publish queue by channel.
	QueueDropped *prometheus.CounterVec
}

// New registers the talker collectors with reg. A nil reg yields
// working collectors that are not exported anywhere.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		TicksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "talker_ticks_total",
			Help: "Total publish loop ticks",
		}),
		Sequence: f.NewGauge(prometheus.GaugeOpts{
			Name: "talker_sequence",
			Help: "Sequence number of the last published chatter message",
		}),
		EffectiveFrequency: f.NewGauge(prometheus.GaugeOpts{
			Name: "talker_effective_frequency_hz",
			Help: "Publish frequency in Hz after validation",
		}),
		MutationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "talker_mutations_total",
			Help: "Total modifyTalkerMessage calls",
		}),
		PublishErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "talker_publish_errors_total",
			Help: "Transport publish failures by channel",
		}, []string{"channel"}),
		QueueDropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "talker_queue_dropped_total",
			Help: "Messages dropped from a full publish queue by channel",
		}, []string{"channel"}),
	}
}
