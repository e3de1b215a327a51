package picker

import (
	"context"

	"contentpicker/internal/wpapi"
)

// Fetcher performs a REST lookup
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*wpapi.Response, error)
}

// Entity is the current upstream state of a picked item
type Entity struct {
	ID    int
	Title string
	URL   string
}

// Resolution is the outcome of resolving a selection
type Resolution struct {
	Missing  []string          // uuids whose entity no longer exists
	Entities map[string]Entity // uuid -> resolved entity
	Failed   int               // lookups that failed for other reasons
}

// Gesture is the capability a reorder input source drives.
// Implementations decide how a drag is recognized; the picker only sees
// start, move, end and cancel.
type Gesture interface {
	Start(uuid string) bool
	Over(uuid string)
	End() (from, to int, ok bool)
	Cancel()
	Active() (string, bool)
}
