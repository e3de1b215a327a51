package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventQueryCancelled  EventType = "QueryCancelled"
	EventResultsLoaded   EventType = "ResultsLoaded"
	EventQueryFailed     EventType = "QueryFailed"
	EventPickChanged     EventType = "PickChanged"
	EventItemsMissing    EventType = "ItemsMissing"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventSelectionSaved  EventType = "SelectionSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when a fetch is issued for a query key
type SearchRequestedEvent struct {
	Key     string
	Keyword string
	Page    int
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// QueryCancelledEvent is emitted when a pending query is superseded
type QueryCancelledEvent struct {
	Key string
}

func (e QueryCancelledEvent) Type() EventType { return EventQueryCancelled }

// ResultsLoadedEvent is emitted when a page of results is integrated
type ResultsLoadedEvent struct {
	Key        string
	Count      int
	TotalPages int
}

func (e ResultsLoadedEvent) Type() EventType { return EventResultsLoaded }

// QueryFailedEvent is emitted when a fetch fails for a reason other than cancellation
type QueryFailedEvent struct {
	Key string
	Err error
}

func (e QueryFailedEvent) Type() EventType { return EventQueryFailed }

// PickChangedEvent carries the full new selection after every mutation
type PickChangedEvent struct {
	Items []PickedItem
}

func (e PickChangedEvent) Type() EventType { return EventPickChanged }

// ItemsMissingEvent is emitted when picked items no longer exist upstream
type ItemsMissingEvent struct {
	UUIDs []string
}

func (e ItemsMissingEvent) Type() EventType { return EventItemsMissing }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// SelectionSavedEvent is emitted after the host persisted the selection
type SelectionSavedEvent struct {
	Path  string
	Count int
}

func (e SelectionSavedEvent) Type() EventType { return EventSelectionSaved }
