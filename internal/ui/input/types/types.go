package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota // picked list has focus
	ModeSearch             // search box has focus
	ModeDrag               // a picked item is being moved
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// SearchAvailable reports whether the search box is shown and editable
	SearchAvailable() bool
	// PickedCount returns the number of picked items
	PickedCount() int
	// CurrentPickedUUID returns the uuid under the picked-list cursor
	CurrentPickedUUID() string
	// CanReorder reports whether the picked list can be reordered
	CanReorder() bool
	// CanEdit reports whether the selection may be changed
	CanEdit() bool
	// ResultCount returns the number of selectable rows under the search box
	ResultCount() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
