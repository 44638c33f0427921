package router

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/appmenu/internal/command"
	"github.com/example/appmenu/internal/events"
	"github.com/example/appmenu/internal/menu"
	"github.com/example/appmenu/internal/metrics"
	"github.com/example/appmenu/internal/protocol"
	"github.com/example/appmenu/internal/window"
)

type recordingSink struct {
	mu     sync.Mutex
	events []protocol.Event
}

func (s *recordingSink) Emit(topic, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, protocol.Event{Topic: topic, Payload: payload})
}

func (s *recordingSink) Events() []protocol.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]protocol.Event, len(s.events))
	copy(out, s.events)
	return out
}

type stubWindow struct {
	focused int
}

func (w *stubWindow) Focus() error {
	w.focused++
	return nil
}

func (w *stubWindow) Close() error { return nil }

type stubFactory struct {
	created []*stubWindow
	configs []window.Config
	err     error
	panics  bool
}

func (f *stubFactory) Create(name string, cfg window.Config, closed func()) (window.Window, error) {
	if f.panics {
		panic("platform exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	w := &stubWindow{}
	f.created = append(f.created, w)
	f.configs = append(f.configs, cfg)
	return w, nil
}

type fixture struct {
	router   *Router
	sink     *recordingSink
	factory  *stubFactory
	registry *window.Registry
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tree, err := menu.Default()
	if err != nil {
		t.Fatalf("menu.Default returned error: %v", err)
	}
	table, err := command.NewTable(command.DefaultEntries(), tree.CustomIDs())
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}

	f := &fixture{
		sink:    &recordingSink{},
		factory: &stubFactory{},
		metrics: metrics.New(),
	}
	f.registry = window.NewRegistry(f.factory)
	f.registry.OnChange(f.metrics.WindowsOpen)
	f.router = New(table, f.sink, f.registry, f.metrics)
	return f
}

func TestActivateNavigation(t *testing.T) {
	tests := []struct {
		id   string
		path string
	}{
		{id: "home", path: "/"},
		{id: "clipboard", path: "/clipboard"},
		{id: "dialog", path: "/dialog"},
		{id: "filesystem", path: "/filesystem"},
		{id: "notifications", path: "/notifications"},
		{id: "os-info", path: "/os-info"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f := newFixture(t)
			f.router.Activate(tt.id)

			got := f.sink.Events()
			if len(got) != 1 {
				t.Fatalf("expected one event, got %d", len(got))
			}
			if got[0].Topic != "navigate" || got[0].Payload != tt.path {
				t.Fatalf("unexpected event %+v", got[0])
			}
			if f.registry.Len() != 0 || len(f.factory.created) != 0 {
				t.Fatalf("navigation must not touch the window registry")
			}
		})
	}
}

func TestActivateThemeDark(t *testing.T) {
	f := newFixture(t)
	f.router.Activate("theme-dark")

	got := f.sink.Events()
	if len(got) != 1 || got[0] != (protocol.Event{Topic: "set-theme", Payload: "dark"}) {
		t.Fatalf("unexpected events %+v", got)
	}
	if f.registry.Len() != 0 || len(f.factory.created) != 0 {
		t.Fatalf("theme change must not touch the window registry")
	}

	expected := `
# HELP appmenu_events_emitted_total Events delivered to at least one presentation-layer listener, by topic.
# TYPE appmenu_events_emitted_total counter
appmenu_events_emitted_total{topic="set-theme"} 1
`
	if err := testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "appmenu_events_emitted_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestActivateWithoutListenersCountsDrop(t *testing.T) {
	f := newFixture(t)
	broadcaster := events.NewBroadcaster()
	broadcaster.OnDrop(f.metrics.DroppedEvent)
	f.router = New(f.router.table, broadcaster, f.registry, f.metrics)

	f.router.Activate("theme-dark")

	expected := `
# HELP appmenu_dropped_effects_total Effects that failed or were dropped, by effect.
# TYPE appmenu_dropped_effects_total counter
appmenu_dropped_effects_total{effect="event:set-theme"} 1
`
	if err := testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "appmenu_dropped_effects_total", "appmenu_events_emitted_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}

	ch, cancel := broadcaster.Subscribe(1)
	defer cancel()
	f.router.Activate("theme-dark")
	if ev := <-ch; ev != (protocol.Event{Topic: "set-theme", Payload: "dark"}) {
		t.Fatalf("unexpected event %+v", ev)
	}

	expected = `
# HELP appmenu_dropped_effects_total Effects that failed or were dropped, by effect.
# TYPE appmenu_dropped_effects_total counter
appmenu_dropped_effects_total{effect="event:set-theme"} 1
# HELP appmenu_events_emitted_total Events delivered to at least one presentation-layer listener, by topic.
# TYPE appmenu_events_emitted_total counter
appmenu_events_emitted_total{topic="set-theme"} 1
`
	if err := testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "appmenu_dropped_effects_total", "appmenu_events_emitted_total"); err != nil {
		t.Fatalf("unexpected metrics after subscribing: %v", err)
	}
}

func TestActivateThemes(t *testing.T) {
	f := newFixture(t)
	f.router.Activate("theme-light")
	f.router.Activate("theme-system")

	got := f.sink.Events()
	want := []protocol.Event{
		{Topic: "set-theme", Payload: "light"},
		{Topic: "set-theme", Payload: "system"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestActivateAboutCreatesThenFocuses(t *testing.T) {
	f := newFixture(t)

	f.router.Activate("about")
	if len(f.factory.created) != 1 {
		t.Fatalf("expected one window, got %d", len(f.factory.created))
	}
	cfg := f.factory.configs[0]
	if cfg.Width != 550 || cfg.Height != 850 || cfg.Resizable || cfg.Minimizable || cfg.Maximizable || !cfg.Centered {
		t.Fatalf("unexpected about config %+v", cfg)
	}

	f.router.Activate("about")
	if len(f.factory.created) != 1 {
		t.Fatalf("repeat activation must not create a second window, got %d", len(f.factory.created))
	}
	if f.factory.created[0].focused != 1 {
		t.Fatalf("expected existing window to be focused, got %d", f.factory.created[0].focused)
	}
	if len(f.sink.Events()) != 0 {
		t.Fatalf("window command must not emit events")
	}

	expected := `
# HELP appmenu_activations_total Menu activations handled, by resolved command kind.
# TYPE appmenu_activations_total counter
appmenu_activations_total{kind="show-window"} 2
# HELP appmenu_windows_open Singleton windows currently registered.
# TYPE appmenu_windows_open gauge
appmenu_windows_open 1
`
	if err := testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected), "appmenu_activations_total", "appmenu_windows_open"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestActivateUnknownIdentifier(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"does-not-exist", "", "quit"} {
		f.router.Activate(id)
	}

	if len(f.sink.Events()) != 0 {
		t.Fatalf("unknown identifiers must not emit, got %+v", f.sink.Events())
	}
	if f.registry.Len() != 0 || len(f.factory.created) != 0 {
		t.Fatalf("unknown identifiers must not touch the registry")
	}

	// The router is still usable afterwards.
	f.router.Activate("home")
	if len(f.sink.Events()) != 1 {
		t.Fatalf("expected router to keep dispatching after no-ops")
	}
}

func TestActivateWindowFailureIsAbsorbed(t *testing.T) {
	f := newFixture(t)
	f.factory.err = errors.New("no display")

	f.router.Activate("about")
	if f.registry.Len() != 0 {
		t.Fatalf("slot must stay empty after a failed creation")
	}

	f.factory.err = nil
	f.router.Activate("about")
	if f.registry.Len() != 1 || len(f.factory.created) != 1 {
		t.Fatalf("expected the next activation to retry and succeed")
	}
}

func TestActivateRecoversFromPanics(t *testing.T) {
	f := newFixture(t)
	f.factory.panics = true

	f.router.Activate("about")

	f.factory.panics = false
	f.router.Activate("theme-dark")
	if len(f.sink.Events()) != 1 {
		t.Fatalf("router must keep working after a panicking effect")
	}
}

func TestActivateWithoutRegistry(t *testing.T) {
	sink := &recordingSink{}
	r := New(nil, sink, nil, nil)
	r.Activate("about")
	r.Activate("home")
	if len(sink.Events()) != 0 {
		t.Fatalf("a router without a table resolves everything to no-op")
	}
}

func TestActivateSerializesConcurrentCallers(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.router.Activate("about")
			f.router.Activate("home")
		}()
	}
	wg.Wait()

	if len(f.factory.created) != 1 {
		t.Fatalf("expected exactly one about window, got %d", len(f.factory.created))
	}
	if len(f.sink.Events()) != 20 {
		t.Fatalf("expected 20 navigate events, got %d", len(f.sink.Events()))
	}
}
