package views

import (
	"fmt"
	"strings"

	"contentpicker/internal/domain"
	"contentpicker/internal/picker"
	"contentpicker/internal/richtext"
)

// PickedRow is one entry of the selection list
type PickedRow struct {
	Item  domain.PickedItem
	Title string // resolved display title, falls back to the stored one
	URL   string
}

// PickedRenderer renders the selection list
type PickedRenderer struct {
	styles *Styles
}

// NewPickedRenderer creates a new picked item renderer
func NewPickedRenderer(styles *Styles) *PickedRenderer {
	return &PickedRenderer{styles: styles}
}

// RowTitle returns the plain display title of a row
func RowTitle(row PickedRow) string {
	title := row.Title
	if title == "" {
		title = row.Item.Title
	}
	return strings.TrimSpace(richtext.StripMarkup(title))
}

// RenderPicked renders a picked item with its position in the set
func (r *PickedRenderer) RenderPicked(row PickedRow, position, setSize int, isSelected, showHandle, showRemove bool) string {
	var b strings.Builder

	if isSelected {
		b.WriteString(r.styles.HighlightBg.Render("› "))
	} else {
		b.WriteString("  ")
	}
	if showHandle {
		b.WriteString(r.styles.Dim.Render("⠿ "))
	}

	title := RowTitle(row)
	if title == "" {
		title = fmt.Sprintf("#%d", row.Item.ID)
	}
	if isSelected {
		b.WriteString(r.styles.HighlightBg.Render(title))
	} else {
		b.WriteString(title)
	}
	if setSize > 1 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  %d/%d", position, setSize)))
	}
	if showRemove && isSelected {
		b.WriteString(r.styles.Dim.Render("  [x] remove"))
	}

	u := row.URL
	if u == "" {
		u = row.Item.URL
	}
	if u = richtext.DisplayURL(u); u != "" {
		b.WriteString("\n    ")
		b.WriteString(r.styles.URL.Render(u))
	}
	return b.String()
}

// RenderPlaceholder renders the slot a dragged item was lifted from
func (r *PickedRenderer) RenderPlaceholder() string {
	return "  " + r.styles.Placeholder.Render(strings.Repeat("┄", 24))
}

// RenderChip renders the detached proxy of the dragged item
func (r *PickedRenderer) RenderChip(title string) string {
	title = strings.TrimSpace(richtext.StripMarkup(title))
	if title == "" {
		title = picker.MovingFallbackTitle
	}
	return "  " + r.styles.Chip.Render(title+" ⠿")
}
