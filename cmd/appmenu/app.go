package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/appmenu/internal/bridge"
	"github.com/example/appmenu/internal/config"
	"github.com/example/appmenu/internal/events"
	"github.com/example/appmenu/internal/ipc"
	"github.com/example/appmenu/internal/logging"
	"github.com/example/appmenu/internal/menu"
	"github.com/example/appmenu/internal/metrics"
	"github.com/example/appmenu/internal/router"
	"github.com/example/appmenu/internal/security"
	"github.com/example/appmenu/internal/window"
)

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tree, table, err := loadDispatch(cfg.Menu.File)
	if err != nil {
		return err
	}

	m := metrics.New()
	broadcaster, sink, closeSink := newEventSink(cfg, m)
	defer closeSink()

	endpoint := ipc.NewEndpoint(cfg.Bridge.Addr)
	baseURL := cfg.Window.BaseURL
	if baseURL == "" {
		baseURL = endpoint.URL()
	}
	launcher := window.NewLauncher(ctx, cfg.Window.Launcher, cfg.Window.Args, baseURL)
	if !launcher.Tracked() {
		log.Printf("window.launcher not set; windows open in the default browser and are not kept singleton")
	}
	registry := window.NewRegistry(launcher)
	registry.OnChange(m.WindowsOpen)
	defer registry.CloseAll()

	dispatcher := router.New(table, sink, registry, m)

	token := security.ResolveBridgeToken(cfg.Bridge.Secret)
	if token == "" {
		log.Printf("bridge token not configured; event stream is unauthenticated")
	} else {
		logging.Debugf("bridge token %s", logging.MaskIdentifier(token))
	}
	server, err := bridge.New(bridge.Options{
		Endpoint:    endpoint,
		Token:       token,
		FrontendDir: cfg.Bridge.FrontendDir,
		Events:      broadcaster,
		Metrics:     m,
	})
	if err != nil {
		return err
	}
	go func() {
		if err := server.Run(ctx); err != nil {
			log.Printf("bridge stopped: %v", err)
		}
	}()

	icon, err := menu.LoadIcon(cfg.Menu.Icon)
	if err != nil {
		log.Printf("using built-in tray icon: %v", err)
		icon = nil
	}

	log.Printf("AppMenu running with %d menus and %d commands", len(tree.Roots()), len(table.IDs()))
	runner := menu.NewRunner(tree, dispatcher, icon)
	if err := runner.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newEventSink builds the broadcaster feeding the bridge and the sink the
// router emits to. The returned func closes the optional NATS connection.
func newEventSink(cfg *config.Config, m *metrics.Metrics) (*events.Broadcaster, events.Sink, func()) {
	broadcaster := events.NewBroadcaster()
	broadcaster.OnDrop(m.DroppedEvent)

	if cfg.NATS.URL == "" {
		return broadcaster, broadcaster, func() {}
	}
	natsSink, err := events.NewNATSSink(events.NATSConfig{URL: cfg.NATS.URL, Subject: cfg.NATS.Subject})
	if err != nil {
		log.Printf("NATS forwarding disabled: %v", err)
		return broadcaster, broadcaster, func() {}
	}
	return broadcaster, events.Fanout(broadcaster, natsSink), func() { _ = natsSink.Close() }
}
