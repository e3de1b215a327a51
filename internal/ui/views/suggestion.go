package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"contentpicker/internal/domain"
	"contentpicker/internal/richtext"
)

// SuggestionRenderer renders search results
type SuggestionRenderer struct {
	styles *Styles
}

// NewSuggestionRenderer creates a new suggestion renderer
func NewSuggestionRenderer(styles *Styles) *SuggestionRenderer {
	return &SuggestionRenderer{styles: styles}
}

// Title returns the display title of a suggestion, empty when it has none
func Title(s domain.Suggestion) string {
	return strings.TrimSpace(richtext.StripMarkup(s.Title))
}

// RenderSuggestion renders a result as a title line with the search term
// highlighted, followed by its URL. typeLabel is omitted when empty.
func (r *SuggestionRenderer) RenderSuggestion(s domain.Suggestion, searchTerm, typeLabel string, isSelected bool) string {
	base := lipgloss.NewStyle()
	if isSelected {
		base = r.styles.HighlightBg
	}
	highlight := r.styles.Highlight.Inherit(base)

	var title strings.Builder
	if isSelected {
		title.WriteString(base.Render("› "))
	} else {
		title.WriteString("  ")
	}
	for _, span := range richtext.Highlight(Title(s), searchTerm) {
		if span.Match {
			title.WriteString(highlight.Render(span.Text))
		} else {
			title.WriteString(base.Render(span.Text))
		}
	}
	if typeLabel != "" {
		title.WriteString(" ")
		title.WriteString(r.styles.TypeBadge.Render(typeLabel))
	}

	line := title.String()
	if u := richtext.DisplayURL(s.URL); u != "" {
		line += "\n    " + r.styles.URL.Render(u)
	}
	return line
}

// RenderLoadMore renders the pagination row
func (r *SuggestionRenderer) RenderLoadMore(isSelected bool) string {
	label := r.styles.LoadMore.Render("Load more")
	if isSelected {
		return r.styles.HighlightBg.Render("› ") + label
	}
	return "  " + label
}
