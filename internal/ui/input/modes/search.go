package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"contentpicker/internal/ui/input/types"
)

// SearchMode edits the search string and walks the result list
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyCtrlP:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown, tea.KeyCtrlN:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case tea.KeyTab:
		if ctx.PickedCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
		}
		return nil, true
	case tea.KeyEnter:
		if ctx.ResultCount() == 0 {
			return nil, true
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
