package logic

// Navigator keeps a cursor inside a window of a flat list.
// Rows hidden above or below the window are announced by one indicator
// line each, which the window height accounts for.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a navigator showing height rows at a time.
// height <= 0 shows every row.
func NewNavigator(height int) *Navigator {
	return &Navigator{viewportHeight: height}
}

// SetHeight changes the number of rows the window can show
func (n *Navigator) SetHeight(height int) {
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// Update records the list length and cursor, scrolling as needed
func (n *Navigator) Update(selectedIndex, totalItems int) {
	n.totalItems = totalItems
	n.selectedIndex = selectedIndex
	if n.selectedIndex >= totalItems {
		n.selectedIndex = totalItems - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
	n.ensureSelectedVisible()
}

// Reset scrolls back to the top
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Window returns the visible rows as [start, end) and whether indicators
// are needed above and below
func (n *Navigator) Window() (start, end int, above, below bool) {
	if n.viewportHeight <= 0 || n.totalItems <= n.viewportHeight {
		return 0, n.totalItems, false, false
	}
	start = n.viewportOffset
	above = start > 0
	if start+n.effectiveHeight(above, false) >= n.totalItems {
		return start, n.totalItems, above, false
	}
	return start, start + n.effectiveHeight(above, true), above, true
}

func (n *Navigator) effectiveHeight(top, bottom bool) int {
	h := n.viewportHeight
	if top {
		h--
	}
	if bottom {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.viewportHeight <= 0 || n.totalItems <= n.viewportHeight {
		n.viewportOffset = 0
		return
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if _, end, _, _ := n.Window(); n.selectedIndex >= end {
		last := n.selectedIndex == n.totalItems-1
		n.viewportOffset = n.selectedIndex - n.effectiveHeight(true, !last) + 1
	}

	if maxOffset := n.totalItems - n.effectiveHeight(true, false); n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
