package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// Selection labels
const (
	SinglePickedLabel = "You have selected the following item:"
	MultiPickedLabel  = "You have selected the following items:"
	NothingFound      = "Nothing found."
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Title  string

	// Search box
	ShowSearch     bool
	SearchLabel    string
	SearchFocused  bool
	SearchInput    string // rendered text input
	ResultsVisible bool
	ResultLines    []string // rendered suggestions in order
	ResultCursor   int      // index into ResultLines, len(ResultLines) for the load more row
	MoreAbove      bool
	MoreBelow      bool
	Loading        bool
	LoadingMore    bool
	ShowLoadMore   bool
	NothingFound   bool
	Failed         bool
	Spinner        string

	// Selection
	Picked        []PickedRow
	PickedCursor  int
	PickedFocused bool
	PickedLabel   string
	ReadOnly      bool
	Orderable     bool
	DragUUID      string
	DragTarget    string
	Remaining     int // -1 when unbounded

	StatusMessage string
	ModeName      string
	HelpModel     help.Model
	KeyBindings   []key.Binding
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	suggestRender *SuggestionRenderer
	pickedRender  *PickedRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		suggestRender: NewSuggestionRenderer(styles),
		pickedRender:  NewPickedRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Suggestions returns the suggestion renderer
func (r *Renderer) Suggestions() *SuggestionRenderer {
	return r.suggestRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	if state.Title != "" {
		content.WriteString(r.styles.Title.Render(state.Title))
		content.WriteString("\n")
	}

	if state.ShowSearch {
		content.WriteString(r.renderSearch(state))
		content.WriteString("\n")
	}

	if len(state.Picked) > 0 {
		content.WriteString(r.renderPicked(state))
		content.WriteString("\n")
	}

	if state.StatusMessage != "" {
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
		content.WriteString("\n")
	}

	footer := state.HelpModel.ShortHelpView(state.KeyBindings)
	if state.ModeName != "" {
		footer = r.styles.Dim.Render("["+state.ModeName+"] ") + footer
	}
	content.WriteString("\n")
	content.WriteString(footer)

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderSearch(state ViewState) string {
	var b strings.Builder

	if state.SearchLabel != "" {
		b.WriteString(r.styles.Label.Render(state.SearchLabel))
		b.WriteString("\n")
	}

	box := r.styles.SearchBox
	if state.SearchFocused {
		box = r.styles.SearchFocused
	}
	if state.Width > 8 {
		box = box.Width(state.Width - 8)
	}
	b.WriteString(box.Render(state.SearchInput))

	if !state.ResultsVisible {
		return b.String()
	}

	b.WriteString("\n")
	switch {
	case state.Loading:
		b.WriteString(state.Spinner)
	case state.NothingFound || state.Failed:
		b.WriteString(r.styles.Dim.Render(NothingFound))
	default:
		if state.MoreAbove {
			b.WriteString(r.styles.Dim.Render("↑ (more above)"))
			b.WriteString("\n")
		}
		for i, line := range state.ResultLines {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(line)
		}
		if state.MoreBelow && !state.LoadingMore {
			b.WriteString("\n")
			b.WriteString(r.styles.Dim.Render("↓ (more below)"))
		}
		if state.LoadingMore {
			b.WriteString("\n")
			b.WriteString(state.Spinner)
		} else if state.ShowLoadMore {
			b.WriteString("\n")
			b.WriteString(r.suggestRender.RenderLoadMore(state.SearchFocused && state.ResultCursor == len(state.ResultLines)))
		}
	}
	return b.String()
}

func (r *Renderer) renderPicked(state ViewState) string {
	var b strings.Builder

	label := state.PickedLabel
	if label == "" {
		label = MultiPickedLabel
		if len(state.Picked) == 1 {
			label = SinglePickedLabel
		}
	}
	b.WriteString(r.styles.Label.Render(label))
	if state.ReadOnly {
		b.WriteString(" ")
		b.WriteString(r.styles.ReadOnly.Render("(read only)"))
	} else if state.Remaining > 0 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf(" (%d more allowed)", state.Remaining)))
	}
	b.WriteString("\n")

	dragging := state.DragUUID != ""
	var chipTitle string
	for _, row := range state.Picked {
		if row.Item.UUID == state.DragUUID {
			chipTitle = RowTitle(row)
		}
	}

	showHandle := state.Orderable && !state.ReadOnly && len(state.Picked) > 1
	for i, row := range state.Picked {
		if i > 0 {
			b.WriteString("\n")
		}
		if dragging && row.Item.UUID == state.DragTarget {
			b.WriteString(r.pickedRender.RenderChip(chipTitle))
			b.WriteString("\n")
		}
		if dragging && row.Item.UUID == state.DragUUID {
			b.WriteString(r.pickedRender.RenderPlaceholder())
			continue
		}
		selected := state.PickedFocused && !dragging && i == state.PickedCursor
		b.WriteString(r.pickedRender.RenderPicked(row, i+1, len(state.Picked), selected, showHandle, !state.ReadOnly))
	}
	return b.String()
}
