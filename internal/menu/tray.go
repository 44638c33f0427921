package menu

import "strings"

const (
	trayTitle          = "AppMenu"
	nestedSeparatorTag = "—"
)

// trayHandled reports whether the tray shell can perform a predefined action.
// Actions it cannot perform are shown disabled.
func trayHandled(action PredefinedAction) bool {
	return action == ActionQuit
}

// itemTooltip carries the accelerator into the tray, which has no shortcut
// column of its own.
func itemTooltip(node Node) string {
	if node.Accelerator == "" {
		return ""
	}
	return "Shortcut: " + node.Accelerator
}

// itemEnabled reports whether the rendered entry accepts clicks.
func itemEnabled(node Node) bool {
	switch node.Type {
	case NodeSeparator:
		return false
	case NodePredefined:
		return node.Enabled && trayHandled(node.Action)
	default:
		return node.Enabled
	}
}

// trayLabel is the text shown for node.
func trayLabel(node Node) string {
	if node.Type == NodeSeparator {
		return nestedSeparatorTag
	}
	return strings.TrimSpace(node.Label)
}
