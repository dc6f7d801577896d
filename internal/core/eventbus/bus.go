package eventbus

import (
	"context"
	"sync"
)

// envelope pairs an event with its payload on the dispatch channel.
type envelope struct {
	event   Event
	payload any
}

// EventBus is an in-process publish/subscribe bus. Publishing never
// blocks: events are enqueued on a buffered channel and dropped (with
// the OnDrop hook fired) when the buffer is full. Subscribers all see
// every dispatched event; no relative ordering between subscribers is
// guaranteed. A panicking subscriber is isolated and reported through
// the OnPanic hook.
type EventBus struct {
	ch    chan envelope
	mu    sync.RWMutex
	subs  map[Event][]func(any)
	hooks hooks
}

// New creates an event bus with the given channel buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start runs the dispatch loop until ctx is cancelled. Events still
// queued at cancellation are discarded.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

// send enqueues an event and fires hooks. Used by the typed Publish methods.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		bus.runOnPublish(event, payload)
	default:
		bus.runOnDrop(event, payload)
	}
}

func (bus *EventBus) addSubscriber(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.runOnSubscribe(event)
}

func subscribe[T any](bus *EventBus, event Event, fn func(T)) {
	bus.addSubscriber(event, func(payload any) {
		if p, ok := payload.(T); ok {
			fn(p)
		}
	})
}

// Typed Publish/Subscribe pairs, one per event type.

func (bus *EventBus) PublishTaskCreated(p TaskCreatedPayload) { bus.send(EventTaskCreated, p) }

func (bus *EventBus) SubscribeTaskCreated(fn func(TaskCreatedPayload)) {
	subscribe(bus, EventTaskCreated, fn)
}

func (bus *EventBus) PublishTaskUpdated(p TaskUpdatedPayload) { bus.send(EventTaskUpdated, p) }

func (bus *EventBus) SubscribeTaskUpdated(fn func(TaskUpdatedPayload)) {
	subscribe(bus, EventTaskUpdated, fn)
}

func (bus *EventBus) PublishTaskDeleted(p TaskDeletedPayload) { bus.send(EventTaskDeleted, p) }

func (bus *EventBus) SubscribeTaskDeleted(fn func(TaskDeletedPayload)) {
	subscribe(bus, EventTaskDeleted, fn)
}

func (bus *EventBus) PublishTaskToggled(p TaskToggledPayload) { bus.send(EventTaskToggled, p) }

func (bus *EventBus) SubscribeTaskToggled(fn func(TaskToggledPayload)) {
	subscribe(bus, EventTaskToggled, fn)
}

func (bus *EventBus) PublishTasksChanged(p TasksChangedPayload) { bus.send(EventTasksChanged, p) }

func (bus *EventBus) SubscribeTasksChanged(fn func(TasksChangedPayload)) {
	subscribe(bus, EventTasksChanged, fn)
}

func (bus *EventBus) PublishThemeChanged(p ThemeChangedPayload) { bus.send(EventThemeChanged, p) }

func (bus *EventBus) SubscribeThemeChanged(fn func(ThemeChangedPayload)) {
	subscribe(bus, EventThemeChanged, fn)
}

func (bus *EventBus) PublishPersistFailed(p PersistFailedPayload) { bus.send(EventPersistFailed, p) }

func (bus *EventBus) SubscribePersistFailed(fn func(PersistFailedPayload)) {
	subscribe(bus, EventPersistFailed, fn)
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	subscribe(bus, EventNotificationPublished, fn)
}
