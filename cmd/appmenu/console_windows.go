//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

func init() {
	if shouldShowConsole(os.Args[1:]) {
		return
	}
	hideConsoleWindow()
}

// shouldShowConsole keeps the console for CLI subcommands, debug runs and
// when APPMENU_SHOW_CONSOLE is set.
func shouldShowConsole(args []string) bool {
	if os.Getenv("APPMENU_SHOW_CONSOLE") != "" {
		return true
	}

	filtered, debug, _, err := parseGlobalFlags(args)
	if err != nil || debug {
		return true
	}
	return len(filtered) > 0 && normalizeCommand(filtered[0]) != "run"
}

func hideConsoleWindow() {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	user32 := windows.NewLazySystemDLL("user32.dll")

	hwnd, _, _ := kernel32.NewProc("GetConsoleWindow").Call()
	if hwnd == 0 {
		return
	}

	const swHide = 0
	user32.NewProc("ShowWindow").Call(hwnd, swHide)
	kernel32.NewProc("FreeConsole").Call()
}
