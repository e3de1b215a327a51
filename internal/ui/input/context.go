package input

// ModelContext implements the Context interface from a snapshot of model state
type ModelContext struct {
	Search     bool
	Editable   bool
	Orderable  bool
	Picked     []string // uuids in selection order
	Cursor     int      // index into Picked
	NumResults int
}

// SearchAvailable reports whether the search box can take focus
func (c *ModelContext) SearchAvailable() bool {
	return c.Search && c.Editable
}

// PickedCount returns the number of picked items
func (c *ModelContext) PickedCount() int {
	return len(c.Picked)
}

// CurrentPickedUUID returns the uuid under the cursor, empty when the list is empty
func (c *ModelContext) CurrentPickedUUID() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Picked) {
		return ""
	}
	return c.Picked[c.Cursor]
}

// CanReorder reports whether the picked list accepts reorder gestures
func (c *ModelContext) CanReorder() bool {
	return c.Editable && c.Orderable && len(c.Picked) > 1
}

// CanEdit reports whether items may be removed
func (c *ModelContext) CanEdit() bool {
	return c.Editable
}

// ResultCount returns the number of selectable result rows
func (c *ModelContext) ResultCount() int {
	return c.NumResults
}
