//go:build !cgo && !windows
// +build !cgo,!windows

package menu

import (
	"context"
	"errors"
)

type unavailableTray struct{}

func newTrayController() trayController {
	return unavailableTray{}
}

// Run returns an error indicating tray functionality is unavailable without cgo.
func (unavailableTray) Run(context.Context, *Tree, []byte, chan<- string) error {
	return errors.New("system tray is unavailable without cgo support")
}
