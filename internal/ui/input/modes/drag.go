package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/ui/input/types"
)

// DragMode moves a lifted item until it is dropped or the drag is cancelled
type DragMode struct{}

func NewDragMode() *DragMode {
	return &DragMode{}
}

func (m *DragMode) Name() string {
	return "move"
}

func (m *DragMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DragMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DragMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.CancelDragAction{}, types.QuitAction{Force: true}}, true
	case "up", "k":
		return []types.Action{types.DragMoveAction{Delta: -1}}, true
	case "down", "j":
		return []types.Action{types.DragMoveAction{Delta: 1}}, true
	case "home", "g":
		return []types.Action{types.DragMoveAction{Delta: -ctx.PickedCount()}}, true
	case "end", "G":
		return []types.Action{types.DragMoveAction{Delta: ctx.PickedCount()}}, true
	case "enter", " ", "m":
		return []types.Action{
			types.DropAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "esc", "q":
		return []types.Action{
			types.CancelDragAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	// Swallow everything else while dragging
	return nil, true
}
