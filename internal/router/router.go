// Package router turns menu activations into effects.
package router

import (
	"log"
	"sync"

	"github.com/example/appmenu/internal/command"
	"github.com/example/appmenu/internal/events"
	"github.com/example/appmenu/internal/logging"
	"github.com/example/appmenu/internal/metrics"
	"github.com/example/appmenu/internal/protocol"
	"github.com/example/appmenu/internal/window"
)

// Windows is the part of the window registry the router drives.
type Windows interface {
	GetOrCreate(name string, cfg window.Config) (*window.Handle, error)
}

// Router resolves activated identifiers through a command table and runs
// exactly one effect per activation. Activations are handled one at a time.
type Router struct {
	table   *command.Table
	sink    events.Sink
	windows Windows
	metrics *metrics.Metrics

	mu sync.Mutex
}

// New constructs a Router. A nil sink discards events; m may be nil.
func New(table *command.Table, sink events.Sink, windows Windows, m *metrics.Metrics) *Router {
	if sink == nil {
		sink = events.Discard
	}
	return &Router{
		table:   table,
		sink:    sink,
		windows: windows,
		metrics: m,
	}
}

// Activate handles one menu activation. It never returns an error and never
// panics: failures are logged and counted, and the router is ready for the
// next activation when Activate returns.
func (r *Router) Activate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmd := r.table.Resolve(id)
	r.metrics.Activation(string(cmd.Kind()))

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("router: %s for %q panicked: %v", cmd, id, rec)
			r.metrics.Dropped(string(cmd.Kind()))
		}
	}()

	switch cmd.Kind() {
	case command.KindNavigate:
		r.emit(protocol.TopicNavigate, cmd.Path())
	case command.KindSetTheme:
		r.emit(protocol.TopicSetTheme, string(cmd.Theme()))
	case command.KindShowWindow:
		r.showWindow(cmd.WindowName(), cmd.WindowConfig())
	default:
		logging.Debugf("router: %q resolved to no-op", id)
	}
}

// emit counts the event only when a listener received it; undelivered
// events are reported by the sink itself.
func (r *Router) emit(topic, payload string) {
	if !events.Deliver(r.sink, topic, payload) {
		logging.Debugf("router: %s %q reached no listener", topic, payload)
		return
	}
	logging.Debugf("router: emitted %s %q", topic, payload)
	r.metrics.Emitted(topic)
}

func (r *Router) showWindow(name string, cfg window.Config) {
	if r.windows == nil {
		log.Printf("router: no window registry; %s window not shown", name)
		r.metrics.Dropped("window")
		return
	}
	h, err := r.windows.GetOrCreate(name, cfg)
	if err != nil {
		log.Printf("router: show %s window: %v", name, err)
		r.metrics.Dropped("window")
		return
	}
	logging.Debugf("router: %s window is %s", name, h.ID())
}
