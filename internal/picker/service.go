package picker

import (
	"log"

	"github.com/google/uuid"

	"contentpicker/internal/domain"
	"contentpicker/internal/eventbus"
)

// Picker applies selection changes to a caller-owned sequence.
// It holds no selection state; every effective change is reported
// through the pick-change callback and the bus.
type Picker struct {
	maxItems     int
	onPickChange func([]domain.PickedItem)
	newUUID      func() string
	bus          eventbus.EventBus
}

// NewPicker creates a picker. maxItems <= 0 means unbounded.
func NewPicker(maxItems int, bus eventbus.EventBus) *Picker {
	return &Picker{
		maxItems: maxItems,
		newUUID:  uuid.NewString,
		bus:      bus,
	}
}

// SetPickChangeFunction sets the callback receiving every new selection
func (p *Picker) SetPickChangeFunction(fn func([]domain.PickedItem)) {
	p.onPickChange = fn
}

// SetUUIDFunction overrides uuid generation
func (p *Picker) SetUUIDFunction(fn func() string) {
	p.newUUID = fn
}

// MaxItems returns the configured bound, 0 when unbounded
func (p *Picker) MaxItems() int {
	if p.maxItems < 0 {
		return 0
	}
	return p.maxItems
}

// IsFull reports whether current has reached the bound
func (p *Picker) IsFull(current []domain.PickedItem) bool {
	return p.maxItems > 0 && len(current) >= p.maxItems
}

// Remaining returns how many more items may be added, -1 when unbounded
func (p *Picker) Remaining(current []domain.PickedItem) int {
	if p.maxItems <= 0 {
		return -1
	}
	if n := p.maxItems - len(current); n > 0 {
		return n
	}
	return 0
}

// Contains reports whether an item with the same id and type is picked
func Contains(current []domain.PickedItem, id int, typ string) bool {
	for _, it := range current {
		if it.ID == id && it.Type == typ {
			return true
		}
	}
	return false
}

// Add appends s to current with a fresh uuid.
// At capacity or for an already picked entity it returns current unchanged.
func (p *Picker) Add(current []domain.PickedItem, s domain.Suggestion) []domain.PickedItem {
	if p.IsFull(current) {
		log.Printf("picker: ignoring %d, selection is full (%d)", s.ID, p.maxItems)
		return current
	}
	typ := s.PickedType()
	if Contains(current, s.ID, typ) {
		log.Printf("picker: ignoring duplicate %s %d", typ, s.ID)
		return current
	}

	next := make([]domain.PickedItem, len(current), len(current)+1)
	copy(next, current)
	next = append(next, domain.PickedItem{
		ID:    s.ID,
		Type:  typ,
		UUID:  p.newUUID(),
		Title: s.Title,
		URL:   s.URL,
	})

	p.changed(next)
	return next
}

// Remove drops the item with item's uuid
func (p *Picker) Remove(current []domain.PickedItem, item domain.PickedItem) []domain.PickedItem {
	idx := indexOf(current, item.UUID)
	if idx < 0 {
		return current
	}

	next := make([]domain.PickedItem, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)

	p.changed(next)
	return next
}

// Reorder moves the item at from to position to, shifting the items between
func (p *Picker) Reorder(current []domain.PickedItem, from, to int) []domain.PickedItem {
	n := len(current)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return current
	}

	next := make([]domain.PickedItem, 0, n)
	moved := current[from]
	for i, it := range current {
		if i == from {
			continue
		}
		next = append(next, it)
	}
	next = append(next[:to], append([]domain.PickedItem{moved}, next[to:]...)...)

	p.changed(next)
	return next
}

// RemoveMissing drops every item whose uuid is listed
func (p *Picker) RemoveMissing(current []domain.PickedItem, uuids []string) []domain.PickedItem {
	if len(uuids) == 0 {
		return current
	}
	missing := make(map[string]struct{}, len(uuids))
	for _, u := range uuids {
		missing[u] = struct{}{}
	}

	next := make([]domain.PickedItem, 0, len(current))
	for _, it := range current {
		if _, ok := missing[it.UUID]; !ok {
			next = append(next, it)
		}
	}
	if len(next) == len(current) {
		return current
	}

	log.Printf("picker: removing %d missing items", len(current)-len(next))
	if p.bus != nil {
		p.bus.Publish(domain.ItemsMissingEvent{UUIDs: uuids})
	}
	p.changed(next)
	return next
}

func (p *Picker) changed(next []domain.PickedItem) {
	if p.onPickChange != nil {
		p.onPickChange(next)
	}
	if p.bus != nil {
		snapshot := make([]domain.PickedItem, len(next))
		copy(snapshot, next)
		p.bus.Publish(domain.PickChangedEvent{Items: snapshot})
	}
}

func indexOf(items []domain.PickedItem, uuid string) int {
	for i, it := range items {
		if it.UUID == uuid {
			return i
		}
	}
	return -1
}
