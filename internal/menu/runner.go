package menu

import (
	"context"
	"errors"
	"log"

	"github.com/example/appmenu/internal/logging"
)

const activationBuffer = 8

// Activator receives the identifier of every activated custom item.
type Activator interface {
	Activate(id string)
}

// trayController renders a tree in the host shell and sends the identifier of
// every clicked item on activations. Run blocks until the tray exits.
type trayController interface {
	Run(ctx context.Context, tree *Tree, icon []byte, activations chan<- string) error
}

// Runner shows the menu tree in the system tray and forwards clicks to an
// Activator one at a time, in the order they were received.
type Runner struct {
	tree      *Tree
	activator Activator
	icon      []byte

	tray        trayController
	activations chan string
}

// NewRunner constructs a Runner for tree. icon may be nil to use the
// built-in image.
func NewRunner(tree *Tree, activator Activator, icon []byte) *Runner {
	return &Runner{
		tree:        tree,
		activator:   activator,
		icon:        icon,
		tray:        newTrayController(),
		activations: make(chan string, activationBuffer),
	}
}

// Start renders the tray and dispatches activations until the context is
// canceled or the tray exits.
func (r *Runner) Start(ctx context.Context) error {
	if r.tree == nil {
		return errors.New("nil menu tree")
	}
	if r.activator == nil {
		return errors.New("nil activator")
	}

	icon := r.icon
	if len(icon) == 0 {
		icon = defaultIcon()
	}
	icon = normalizedIcon(icon)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	trayErr := make(chan error, 1)
	go func() {
		trayErr <- r.tray.Run(ctx, r.tree, icon, r.activations)
	}()
	logging.Debugf("tray runner started with %d custom items", len(r.tree.CustomIDs()))

	for {
		select {
		case <-ctx.Done():
			log.Println("AppMenu tray stopping")
			<-trayErr
			return ctx.Err()
		case id := <-r.activations:
			logging.Debugf("menu item %q activated", id)
			r.activator.Activate(id)
		case err := <-trayErr:
			if err != nil {
				return err
			}
			logging.Debugf("tray exited")
			return nil
		}
	}
}

// offer queues an activation without blocking the shell's click loop.
func offer(activations chan<- string, id string) {
	select {
	case activations <- id:
	default:
		log.Printf("activation queue full; dropped click on %q", id)
	}
}
