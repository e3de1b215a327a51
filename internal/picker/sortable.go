package picker

import (
	"contentpicker/internal/domain"
)

// MovingFallbackTitle labels the drag proxy when the item has no title
const MovingFallbackTitle = "Moving 1 item"

// Enabled reports whether a list of count items can be reordered
func Enabled(count int, orderable bool) bool {
	return orderable && count > 1
}

// DragController tracks one reorder gesture over a snapshot of the list.
// States are idle and dragging; End and Cancel return to idle.
type DragController struct {
	order     []string
	orderable bool
	active    string
	over      string
}

// NewDragController creates an idle controller
func NewDragController() *DragController {
	return &DragController{}
}

// SetItems replaces the list the gesture operates on. A drag whose
// item disappeared is cancelled.
func (d *DragController) SetItems(items []domain.PickedItem, orderable bool) {
	d.order = d.order[:0]
	for _, it := range items {
		d.order = append(d.order, it.UUID)
	}
	d.orderable = orderable

	if d.active != "" && (d.index(d.active) < 0 || !d.Enabled()) {
		d.Cancel()
	} else if d.over != "" && d.index(d.over) < 0 {
		d.over = d.active
	}
}

// Enabled reports whether the current list can be reordered
func (d *DragController) Enabled() bool {
	return Enabled(len(d.order), d.orderable)
}

// Start begins dragging uuid. It fails when reordering is disabled,
// the item is unknown, or a drag is already active.
func (d *DragController) Start(uuid string) bool {
	if !d.Enabled() || d.active != "" || d.index(uuid) < 0 {
		return false
	}
	d.active = uuid
	d.over = uuid
	return true
}

// Over records the item currently under the dragged proxy
func (d *DragController) Over(uuid string) {
	if d.active == "" || d.index(uuid) < 0 {
		return
	}
	d.over = uuid
}

// MoveBy moves the drop target delta positions, clamped to the list
func (d *DragController) MoveBy(delta int) {
	if d.active == "" {
		return
	}
	i := d.index(d.over) + delta
	if i < 0 {
		i = 0
	}
	if i >= len(d.order) {
		i = len(d.order) - 1
	}
	d.over = d.order[i]
}

// End drops the dragged item. ok is false when it was dropped onto itself.
func (d *DragController) End() (from, to int, ok bool) {
	if d.active == "" {
		return 0, 0, false
	}
	from, to = d.index(d.active), d.index(d.over)
	d.active, d.over = "", ""
	if from < 0 || to < 0 || from == to {
		return 0, 0, false
	}
	return from, to, true
}

// Cancel abandons the drag without a change
func (d *DragController) Cancel() {
	d.active, d.over = "", ""
}

// Active returns the dragged uuid
func (d *DragController) Active() (string, bool) {
	return d.active, d.active != ""
}

// Target returns the uuid the item would be dropped on
func (d *DragController) Target() string {
	return d.over
}

func (d *DragController) index(uuid string) int {
	for i, u := range d.order {
		if u == uuid {
			return i
		}
	}
	return -1
}

var _ Gesture = (*DragController)(nil)
