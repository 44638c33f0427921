//go:build cgo || windows
// +build cgo windows

package menu

import (
	"context"
	"runtime"
	"sync"

	"github.com/getlantern/systray"

	"github.com/example/appmenu/internal/logging"
)

type systrayController struct {
	mu      sync.Mutex
	cancels []context.CancelFunc
}

func newTrayController() trayController {
	return &systrayController{}
}

func (c *systrayController) Run(ctx context.Context, tree *Tree, icon []byte, activations chan<- string) error {
	done := make(chan struct{})

	go systray.Run(func() {
		if len(icon) > 0 {
			systray.SetIcon(icon)
			if runtime.GOOS == "darwin" {
				systray.SetTemplateIcon(icon, icon)
			}
		}
		systray.SetTooltip(trayTitle)

		for _, root := range tree.Roots() {
			c.addNode(ctx, root, nil, activations)
		}

		go func() {
			<-ctx.Done()
			systray.Quit()
		}()
	}, func() {
		c.shutdown()
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *systrayController) addNode(ctx context.Context, node Node, parent *systray.MenuItem, activations chan<- string) {
	if node.Type == NodeSeparator && parent == nil {
		systray.AddSeparator()
		return
	}

	mi := makeMenuItem(parent, trayLabel(node), itemTooltip(node))
	if !itemEnabled(node) {
		mi.Disable()
	}

	ctxItem, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancels = append(c.cancels, cancel)
	c.mu.Unlock()

	switch node.Type {
	case NodeGroup:
		go drainClicks(ctxItem, mi.ClickedCh)
		for _, child := range node.Children {
			c.addNode(ctx, child, mi, activations)
		}
	case NodeItem:
		go forwardClicks(ctxItem, mi.ClickedCh, func() { offer(activations, node.ID) })
	case NodePredefined:
		if node.Action == ActionQuit {
			go forwardClicks(ctxItem, mi.ClickedCh, func() {
				logging.Debugf("quit selected from tray")
				systray.Quit()
			})
			return
		}
		go drainClicks(ctxItem, mi.ClickedCh)
	default:
		go drainClicks(ctxItem, mi.ClickedCh)
	}
}

func makeMenuItem(parent *systray.MenuItem, label, tooltip string) *systray.MenuItem {
	if parent == nil {
		return systray.AddMenuItem(label, tooltip)
	}
	return parent.AddSubMenuItem(label, tooltip)
}

func forwardClicks(ctx context.Context, ch <-chan struct{}, fn func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			fn()
		}
	}
}

func drainClicks(ctx context.Context, ch <-chan struct{}) {
	forwardClicks(ctx, ch, func() {})
}

func (c *systrayController) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}
