package events

import (
	"reflect"
	"sync"
)

// EventHandler defines a callback which receives a published event of the generic type. A non-nil error returned
// by the handler stops the publishing of the event and is returned to the publisher.
type EventHandler[T any] func(T) error

// globalEventHandlers maps an event type name to every EventHandler subscribed through SubscribeAny. These handlers
// are invoked whenever any EventEmitter publishes an event of that type.
var globalEventHandlers map[string][]any

// globalEventHandlersLock guards globalEventHandlers against concurrent access.
var globalEventHandlersLock sync.Mutex

// SubscribeAny adds an EventHandler which is invoked for every event of the given type, regardless of which
// EventEmitter publishes it.
// Note: handlers subscribed here live for the remainder of the program. Short-lived objects should subscribe to a
// specific EventEmitter instead so they can be garbage collected.
func SubscribeAny[T any](callback EventHandler[T]) {
	// Reflect on a nil pointer to obtain the generic type.
	eventType := reflect.TypeOf((*T)(nil)).Elem()

	globalEventHandlersLock.Lock()
	defer globalEventHandlersLock.Unlock()

	// Lazily create the handler mapping.
	if globalEventHandlers == nil {
		globalEventHandlers = make(map[string][]any)
	}

	globalEventHandlers[eventType.String()] = append(globalEventHandlers[eventType.String()], callback)
}

// EventEmitter publishes events of a single type to the EventHandler callbacks subscribed to it.
type EventEmitter[T any] struct {
	// subscriptions defines the EventHandler callbacks invoked when an event is published to this emitter.
	subscriptions []EventHandler[T]

	// subscriptionsLock guards subscriptions, as generators may be driven from a watcher goroutine while a caller
	// subscribes.
	subscriptionsLock sync.Mutex
}

// Publish emits the provided event to every subscribed EventHandler, followed by every global handler for the
// event type. Returns the first error returned by a handler, if any.
func (e *EventEmitter[T]) Publish(event T) error {
	// Copy our subscriptions so handlers may subscribe further callbacks without deadlocking.
	e.subscriptionsLock.Lock()
	subscriptions := make([]EventHandler[T], len(e.subscriptions))
	copy(subscriptions, e.subscriptions)
	e.subscriptionsLock.Unlock()

	for _, subscription := range subscriptions {
		if err := subscription(event); err != nil {
			return err
		}
	}

	// Fetch any global handlers for this event type.
	eventType := reflect.TypeOf((*T)(nil)).Elem()
	globalEventHandlersLock.Lock()
	callbacks := globalEventHandlers[eventType.String()]
	globalEventHandlersLock.Unlock()

	for _, callback := range callbacks {
		if err := callback.(EventHandler[T])(event); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe adds an EventHandler to this emitter. The callback is invoked for every event published afterward.
func (e *EventEmitter[T]) Subscribe(callback EventHandler[T]) {
	e.subscriptionsLock.Lock()
	defer e.subscriptionsLock.Unlock()
	e.subscriptions = append(e.subscriptions, callback)
}

// SubscriptionCount returns the number of handlers subscribed directly to this emitter.
func (e *EventEmitter[T]) SubscriptionCount() int {
	e.subscriptionsLock.Lock()
	defer e.subscriptionsLock.Unlock()
	return len(e.subscriptions)
}
