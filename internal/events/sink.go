// Package events delivers one-way notifications to the presentation layer.
package events

import "github.com/example/appmenu/internal/protocol"

// Sink accepts (topic, payload) pairs for the presentation layer. Emit is
// best effort and must return without waiting on any listener.
type Sink interface {
	Emit(topic, payload string)
}

// Deliverer is implemented by sinks that know whether an event reached a
// listener.
type Deliverer interface {
	Deliver(topic, payload string) bool
}

// Deliver emits through sink and reports whether the event reached a
// listener. Sinks that cannot tell are assumed to have delivered.
func Deliver(sink Sink, topic, payload string) bool {
	if d, ok := sink.(Deliverer); ok {
		return d.Deliver(topic, payload)
	}
	sink.Emit(topic, payload)
	return true
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(string, string) {}

func (discard) Deliver(string, string) bool { return false }

type fanout []Sink

// Fanout returns a Sink emitting to every non-nil sink in order.
func Fanout(sinks ...Sink) Sink {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (f fanout) Emit(topic, payload string) {
	f.Deliver(topic, payload)
}

// Deliver reports whether any of the sinks delivered the event.
func (f fanout) Deliver(topic, payload string) bool {
	delivered := false
	for _, s := range f {
		if Deliver(s, topic, payload) {
			delivered = true
		}
	}
	return delivered
}

func newEvent(topic, payload string) protocol.Event {
	return protocol.Event{Topic: topic, Payload: payload}
}
