package main

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/appmenu/internal/config"
	"github.com/example/appmenu/internal/metrics"
	"github.com/example/appmenu/internal/router"
)

func TestEventWithoutListenersIsCountedAsDropped(t *testing.T) {
	_, table, err := loadDispatch("")
	if err != nil {
		t.Fatalf("loadDispatch returned error: %v", err)
	}
	m := metrics.New()
	broadcaster, sink, closeSink := newEventSink(&config.Config{}, m)
	defer closeSink()

	if broadcaster.Listeners() != 0 {
		t.Fatalf("expected no listeners, got %d", broadcaster.Listeners())
	}
	router.New(table, sink, nil, m).Activate("theme-dark")

	expected := `
# HELP appmenu_dropped_effects_total Effects that failed or were dropped, by effect.
# TYPE appmenu_dropped_effects_total counter
appmenu_dropped_effects_total{effect="event:set-theme"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "appmenu_dropped_effects_total", "appmenu_events_emitted_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
