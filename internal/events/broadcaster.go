package events

import (
	"sync"

	"github.com/example/appmenu/internal/logging"
	"github.com/example/appmenu/internal/protocol"
)

const defaultListenerBuffer = 16

// Broadcaster fans events out to the listeners attached at the moment of
// emission. Events emitted while nobody listens are dropped, and a listener
// whose queue is full misses the event rather than stalling the emitter.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[*listener]struct{}
	onDrop    func(topic string)
}

type listener struct {
	ch chan protocol.Event
}

// NewBroadcaster constructs an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[*listener]struct{})}
}

// OnDrop registers a callback invoked for every event that did not reach a
// listener: once when nobody is attached, and once per listener whose queue
// was full. It must be set before events are emitted.
func (b *Broadcaster) OnDrop(fn func(topic string)) {
	b.onDrop = fn
}

// Subscribe attaches a listener with a queue of the given size. The returned
// cancel function detaches it and closes the channel; it is safe to call more
// than once.
func (b *Broadcaster) Subscribe(buffer int) (<-chan protocol.Event, func()) {
	if buffer <= 0 {
		buffer = defaultListenerBuffer
	}
	l := &listener{ch: make(chan protocol.Event, buffer)}

	b.mu.Lock()
	b.listeners[l] = struct{}{}
	count := len(b.listeners)
	b.mu.Unlock()
	logging.Debugf("event listener attached (%d active)", count)

	var once sync.Once
	return l.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, l)
			close(l.ch)
			count := len(b.listeners)
			b.mu.Unlock()
			logging.Debugf("event listener detached (%d active)", count)
		})
	}
}

// Listeners reports the number of attached listeners.
func (b *Broadcaster) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Emit implements Sink.
func (b *Broadcaster) Emit(topic, payload string) {
	b.Deliver(topic, payload)
}

// Deliver emits the event and reports whether at least one listener
// received it.
func (b *Broadcaster) Deliver(topic, payload string) bool {
	event := newEvent(topic, payload)

	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.listeners) == 0 {
		logging.Debugf("no listeners for %s event; dropped", topic)
		b.dropped(topic)
		return false
	}
	delivered := false
	for l := range b.listeners {
		select {
		case l.ch <- event:
			delivered = true
		default:
			logging.Debugf("listener queue full; %s event dropped", topic)
			b.dropped(topic)
		}
	}
	return delivered
}

func (b *Broadcaster) dropped(topic string) {
	if b.onDrop != nil {
		b.onDrop(topic)
	}
}
