package ui

import (
	"contentpicker/internal/eventbus"
	"contentpicker/internal/picker"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// entitiesResolvedMsg carries the result of resolving the stored selection
type entitiesResolvedMsg struct {
	resolution picker.Resolution
	err        error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
