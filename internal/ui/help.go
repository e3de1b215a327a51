package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title string
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(title string) *HelpRenderer {
	if title == "" {
		title = "Content Picker"
	}
	return &HelpRenderer{title: title}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	name    string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Selection", []helpEntry{
		{"↑/↓, j/k", "Move between picked items"},
		{"g/G", "Go to first/last item"},
		{"Enter, p", "Preview the item"},
		{"x, Del", "Remove the item"},
	}},
	{"Search", []helpEntry{
		{"Tab, /", "Focus the search box"},
		{"↑/↓", "Move between results"},
		{"Enter", "Pick the result, or load more"},
		{"Esc", "Leave the search box"},
	}},
	{"Ordering", []helpEntry{
		{"J/K", "Move the item down/up"},
		{"m, Space", "Lift the item to move it"},
		{"Enter", "Drop the lifted item"},
		{"Esc", "Put the lifted item back"},
	}},
	{"General", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContent renders the help text shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render(r.title + " Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.name))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(descStyle.Render("Press q to close this help."))
	help.WriteString("\n")
	return help.String()
}

// PagerOps shows long text in the ov pager while the program yields the terminal
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// SetProgram sets the program whose terminal is released while paging
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show displays content in the pager and blocks until it is closed
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return fmt.Errorf("failed to release terminal: %w", err)
	}
	defer func() {
		// Let ov leave the alternate screen before Bubble Tea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
