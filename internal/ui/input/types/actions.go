package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Selection actions
type RemoveItemAction struct {
	UUID string
}

func (a RemoveItemAction) Type() string { return "remove_item" }

// MoveItemAction moves the current picked item by Delta positions in one step
type MoveItemAction struct {
	Delta int
}

func (a MoveItemAction) Type() string { return "move_item" }

// Drag actions
type StartDragAction struct {
	UUID string
}

func (a StartDragAction) Type() string { return "start_drag" }

type DragMoveAction struct {
	Delta int
}

func (a DragMoveAction) Type() string { return "drag_move" }

type DropAction struct{}

func (a DropAction) Type() string { return "drop" }

type CancelDragAction struct{}

func (a CancelDragAction) Type() string { return "cancel_drag" }

// Other actions
type PreviewAction struct {
	UUID string
}

func (a PreviewAction) Type() string { return "preview" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
