package grid

// EventData carries the propagation state of a single notification.
// Handlers use it to stop later handlers or to veto the host's default action.
type EventData struct {
	propagationStopped          bool
	immediatePropagationStopped bool
	defaultPrevented            bool
	returnValue                 *bool
}

// NewEventData creates an empty event data
func NewEventData() *EventData {
	return &EventData{}
}

// StopPropagation stops later handlers from seeing the event
func (e *EventData) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation stops later handlers and the host's own handling
func (e *EventData) StopImmediatePropagation() {
	e.immediatePropagationStopped = true
}

// PreventDefault suppresses the host's default action
func (e *EventData) PreventDefault() {
	e.defaultPrevented = true
}

func (e *EventData) IsPropagationStopped() bool {
	return e.propagationStopped
}

func (e *EventData) IsImmediatePropagationStopped() bool {
	return e.immediatePropagationStopped
}

func (e *EventData) IsDefaultPrevented() bool {
	return e.defaultPrevented
}

// SetReturnValue records a handler result, e.g. false to veto a cancelable event
func (e *EventData) SetReturnValue(v bool) {
	e.returnValue = &v
}

// ReturnValue returns the last recorded handler result and whether one was set
func (e *EventData) ReturnValue() (bool, bool) {
	if e.returnValue == nil {
		return false, false
	}
	return *e.returnValue, true
}

// Vetoed reports whether a handler explicitly returned false
func (e *EventData) Vetoed() bool {
	v, ok := e.ReturnValue()
	return ok && !v
}

// Handler handles one notification of an Event
type Handler[T any] func(e *EventData, args T)

type subscription[T any] struct {
	id      int
	handler Handler[T]
}

// Event is a typed, synchronous publish/subscribe channel.
// It is not safe for concurrent use; all notifications happen on the caller's goroutine.
type Event[T any] struct {
	name     string
	nextID   int
	handlers []subscription[T]
}

// NewEvent creates a new event
func NewEvent[T any](name string) *Event[T] {
	return &Event[T]{name: name}
}

// Name returns the event name
func (ev *Event[T]) Name() string {
	return ev.name
}

// Subscribe registers a handler and returns its unsubscribe function
func (ev *Event[T]) Subscribe(h Handler[T]) func() {
	ev.nextID++
	id := ev.nextID
	ev.handlers = append(ev.handlers, subscription[T]{id: id, handler: h})

	return func() {
		for i, s := range ev.handlers {
			if s.id == id {
				// Copy so a notification in progress keeps its snapshot intact
				handlers := make([]subscription[T], 0, len(ev.handlers)-1)
				handlers = append(handlers, ev.handlers[:i]...)
				ev.handlers = append(handlers, ev.handlers[i+1:]...)
				break
			}
		}
	}
}

// HandlerCount returns the number of subscribed handlers
func (ev *Event[T]) HandlerCount() int {
	return len(ev.handlers)
}

// Notify calls every handler in subscription order until one stops propagation.
// A nil data gets a fresh EventData; the data used is returned.
func (ev *Event[T]) Notify(args T, data *EventData) *EventData {
	if data == nil {
		data = NewEventData()
	}

	handlers := ev.handlers
	for _, s := range handlers {
		if data.IsPropagationStopped() || data.IsImmediatePropagationStopped() {
			break
		}
		s.handler(data, args)
	}
	return data
}

// EventHandler groups subscriptions so they can be released together
type EventHandler struct {
	unsubscribers []func()
}

// NewEventHandler creates an empty handler group
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// Subscribe subscribes h to ev and remembers the subscription
func Subscribe[T any](eh *EventHandler, ev *Event[T], h Handler[T]) {
	eh.unsubscribers = append(eh.unsubscribers, ev.Subscribe(h))
}

// Len returns the number of live subscriptions in the group
func (eh *EventHandler) Len() int {
	return len(eh.unsubscribers)
}

// UnsubscribeAll releases every subscription in the group
func (eh *EventHandler) UnsubscribeAll() {
	for i := len(eh.unsubscribers) - 1; i >= 0; i-- {
		eh.unsubscribers[i]()
	}
	eh.unsubscribers = nil
}
