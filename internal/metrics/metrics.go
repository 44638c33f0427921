// Package metrics exposes dispatch counters for the /metrics endpoint.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "appmenu"

// Metrics groups the collectors recorded by the dispatch core. A nil
// *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	activations *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	emitted     *prometheus.CounterVec
	windowsOpen prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activations_total",
			Help:      "Menu activations handled, by resolved command kind.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_effects_total",
			Help:      "Effects that failed or were dropped, by effect.",
		}, []string{"effect"}),
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_emitted_total",
			Help:      "Events delivered to at least one presentation-layer listener, by topic.",
		}, []string{"topic"}),
		windowsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "windows_open",
			Help:      "Singleton windows currently registered.",
		}),
	}
	m.registry.MustRegister(m.activations, m.dropped, m.emitted, m.windowsOpen)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Activation counts one handled activation.
func (m *Metrics) Activation(kind string) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(kind).Inc()
}

// Dropped counts one failed or dropped effect.
func (m *Metrics) Dropped(effect string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(effect).Inc()
}

// DroppedEvent counts one event on topic that reached no listener.
func (m *Metrics) DroppedEvent(topic string) {
	m.Dropped("event:" + topic)
}

// Emitted counts one event that reached a listener.
func (m *Metrics) Emitted(topic string) {
	if m == nil {
		return
	}
	m.emitted.WithLabelValues(topic).Inc()
}

// WindowsOpen sets the open window gauge.
func (m *Metrics) WindowsOpen(n int) {
	if m == nil {
		return
	}
	m.windowsOpen.Set(float64(n))
}
