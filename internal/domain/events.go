package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventRowsMoved        EventType = "RowsMoved"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted when a selection model publishes new ranges
type SelectionChangedEvent struct {
	Model  string // plugin name of the publishing model
	Ranges []Range
	Caller string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// RowsMovedEvent is emitted after rows were reordered through the row move handle
type RowsMovedEvent struct {
	Rows         []int
	InsertBefore int
}

func (e RowsMovedEvent) Type() EventType { return EventRowsMoved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Model string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
