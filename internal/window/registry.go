// Package window tracks named singleton windows and creates them on demand.
package window

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/example/appmenu/internal/logging"
)

// Config describes how a window is presented. It is a plain value.
type Config struct {
	Width       int
	Height      int
	Resizable   bool
	Minimizable bool
	Maximizable bool
	Centered    bool
	Title       string
	// Content locates what the window displays: an absolute URL or a path
	// resolved against the front-end base URL.
	Content string
}

// Window is a live platform window.
type Window interface {
	Focus() error
	Close() error
}

// Factory creates platform windows. closed must be invoked once when the
// window goes away, from a goroutine other than the one calling Create.
type Factory interface {
	Create(name string, cfg Config, closed func()) (Window, error)
}

// Handle is an opaque reference to a live window owned by a Registry slot.
type Handle struct {
	id     string
	name   string
	config Config
	win    Window
}

// ID returns the unique identifier of this window instance.
func (h *Handle) ID() string { return h.id }

// Name returns the registry slot the handle belongs to.
func (h *Handle) Name() string { return h.name }

// Config returns the configuration the window was created with.
func (h *Handle) Config() Config { return h.config }

// Registry holds at most one live handle per window name.
type Registry struct {
	factory Factory

	mu       sync.Mutex
	slots    map[string]*Handle
	onChange func(open int)
}

// NewRegistry constructs a Registry backed by factory.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory: factory,
		slots:   make(map[string]*Handle),
	}
}

// OnChange registers a callback receiving the number of open windows after
// every registration or release. It must be set before the registry is used.
func (r *Registry) OnChange(fn func(open int)) {
	r.onChange = fn
}

// GetOrCreate focuses and returns the live window registered under name, or
// creates, registers and returns a new one. The check and the creation happen
// under one lock so repeated activations never produce two windows. A window
// that can no longer be focused is evicted and replaced. On creation failure
// the slot stays empty and the error is returned.
func (r *Registry) GetOrCreate(name string, cfg Config) (*Handle, error) {
	if r.factory == nil {
		return nil, errors.New("window registry has no factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.slots[name]; ok {
		err := h.win.Focus()
		if err == nil {
			logging.Debugf("window %s (%s) focused", name, h.id)
			return h, nil
		}
		log.Printf("window %s: focus failed, replacing it: %v", name, err)
		delete(r.slots, name)
		r.notify()
		go func(w Window) {
			if err := w.Close(); err != nil {
				logging.Debugf("window %s (%s): close after failed focus: %v", name, h.id, err)
			}
		}(h.win)
	}

	h := &Handle{id: uuid.NewString(), name: name, config: cfg}
	win, err := r.factory.Create(name, cfg, func() { r.releaseHandle(h) })
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", name, err)
	}
	h.win = win
	r.slots[name] = h
	logging.Debugf("window %s (%s) created", name, h.id)
	r.notify()
	return h, nil
}

// Release clears the slot for name so the next GetOrCreate builds a fresh
// window.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[name]; !ok {
		return
	}
	delete(r.slots, name)
	logging.Debugf("window %s released", name)
	r.notify()
}

// releaseHandle clears the slot only when h still occupies it, so a late
// close notification cannot evict a newer window.
func (r *Registry) releaseHandle(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.slots[h.name]; !ok || current != h {
		logging.Debugf("ignoring stale close for window %s (%s)", h.name, h.id)
		return
	}
	delete(r.slots, h.name)
	logging.Debugf("window %s (%s) closed", h.name, h.id)
	r.notify()
}

// Lookup returns the live handle for name, if any.
func (r *Registry) Lookup(name string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.slots[name]
	return h, ok
}

// Len reports the number of live windows.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// CloseAll closes every live window and empties the registry.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	slots := r.slots
	r.slots = make(map[string]*Handle)
	r.notify()
	r.mu.Unlock()

	for name, h := range slots {
		if err := h.win.Close(); err != nil {
			log.Printf("window %s: close failed: %v", name, err)
		}
	}
}

func (r *Registry) notify() {
	if r.onChange != nil {
		r.onChange(len(r.slots))
	}
}
