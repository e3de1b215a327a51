package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if uuid := ctx.CurrentPickedUUID(); uuid != "" {
			return []types.Action{types.PreviewAction{UUID: uuid}}, true
		}
		return nil, false

	case tea.KeyTab:
		if ctx.SearchAvailable() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
		}
		return nil, false

	case tea.KeyDelete, tea.KeyBackspace:
		return m.remove(ctx)

	case tea.KeyShiftUp:
		return m.move(ctx, -1)

	case tea.KeyShiftDown:
		return m.move(ctx, 1)
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "/", "i":
		if ctx.SearchAvailable() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
		}
		return nil, false

	case "x", "d":
		return m.remove(ctx)

	case "J":
		return m.move(ctx, 1)

	case "K":
		return m.move(ctx, -1)

	case "m", " ":
		if !ctx.CanReorder() || ctx.CurrentPickedUUID() == "" {
			return nil, false
		}
		return []types.Action{
			types.StartDragAction{UUID: ctx.CurrentPickedUUID()},
			types.ChangeModeAction{Mode: types.ModeDrag},
		}, true

	case "p":
		if uuid := ctx.CurrentPickedUUID(); uuid != "" {
			return []types.Action{types.PreviewAction{UUID: uuid}}, true
		}
		return nil, false

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

func (m *NormalMode) remove(ctx types.Context) ([]types.Action, bool) {
	if !ctx.CanEdit() || ctx.CurrentPickedUUID() == "" {
		return nil, false
	}
	return []types.Action{types.RemoveItemAction{UUID: ctx.CurrentPickedUUID()}}, true
}

func (m *NormalMode) move(ctx types.Context, delta int) ([]types.Action, bool) {
	if !ctx.CanReorder() || ctx.CurrentPickedUUID() == "" {
		return nil, false
	}
	return []types.Action{types.MoveItemAction{Delta: delta}}, true
}
