package menu

// NodeType represents the supported menu node types.
type NodeType string

const (
	NodeSeparator  NodeType = "separator"
	NodeItem       NodeType = "item"
	NodeGroup      NodeType = "group"
	NodePredefined NodeType = "predefined"
)

// PredefinedAction names a platform-native menu behaviour. Predefined items
// are bound by the host shell and never reach the command router.
type PredefinedAction string

const (
	ActionHide        PredefinedAction = "hide"
	ActionHideOthers  PredefinedAction = "hide-others"
	ActionShowAll     PredefinedAction = "show-all"
	ActionQuit        PredefinedAction = "quit"
	ActionUndo        PredefinedAction = "undo"
	ActionRedo        PredefinedAction = "redo"
	ActionCut         PredefinedAction = "cut"
	ActionCopy        PredefinedAction = "copy"
	ActionPaste       PredefinedAction = "paste"
	ActionSelectAll   PredefinedAction = "select-all"
	ActionFullscreen  PredefinedAction = "fullscreen"
	ActionMinimize    PredefinedAction = "minimize"
	ActionMaximize    PredefinedAction = "maximize"
	ActionCloseWindow PredefinedAction = "close-window"
)

var predefinedLabels = map[PredefinedAction]string{
	ActionHide:        "Hide",
	ActionHideOthers:  "Hide Others",
	ActionShowAll:     "Show All",
	ActionQuit:        "Quit",
	ActionUndo:        "Undo",
	ActionRedo:        "Redo",
	ActionCut:         "Cut",
	ActionCopy:        "Copy",
	ActionPaste:       "Paste",
	ActionSelectAll:   "Select All",
	ActionFullscreen:  "Toggle Full Screen",
	ActionMinimize:    "Minimize",
	ActionMaximize:    "Zoom",
	ActionCloseWindow: "Close Window",
}

// Valid reports whether a is one of the known platform actions.
func (a PredefinedAction) Valid() bool {
	_, ok := predefinedLabels[a]
	return ok
}

// DefaultLabel is the label shown for a predefined item without an explicit one.
func (a PredefinedAction) DefaultLabel() string {
	return predefinedLabels[a]
}

// Node is one entry of a built menu tree. Which fields are meaningful depends
// on Type: items carry ID, Label, Accelerator and Enabled; groups carry Label
// and Children; predefined entries carry Action and Label.
type Node struct {
	Type        NodeType
	ID          string
	Label       string
	Accelerator string
	Enabled     bool
	Action      PredefinedAction
	Children    []Node
}

func (n Node) clone() Node {
	if len(n.Children) == 0 {
		n.Children = nil
		return n
	}
	children := make([]Node, len(n.Children))
	for i, child := range n.Children {
		children[i] = child.clone()
	}
	n.Children = children
	return n
}
