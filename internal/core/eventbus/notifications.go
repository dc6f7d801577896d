package eventbus

import (
	"fmt"

	"github.com/colonyops/taskdeck/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
// It is purely observational; dropping or missing a notification never
// affects the store.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeTaskCreated(func(p TaskCreatedPayload) {
		if p.Task == nil {
			return
		}
		r.notifyf(notify.LevelSuccess, "task %q added", p.Task.Title)
	})

	r.bus.SubscribeTaskUpdated(func(p TaskUpdatedPayload) {
		if p.Task == nil {
			return
		}
		r.notifyf(notify.LevelSuccess, "task %q updated", p.Task.Title)
	})

	r.bus.SubscribeTaskDeleted(func(p TaskDeletedPayload) {
		r.notifyf(notify.LevelInfo, "task deleted")
	})

	r.bus.SubscribeTaskToggled(func(p TaskToggledPayload) {
		if p.Task == nil {
			return
		}
		r.notifyf(notify.LevelInfo, "task marked as %s", p.Task.Status)
	})

	r.bus.SubscribeThemeChanged(func(p ThemeChangedPayload) {
		mode := "light"
		if p.Dark {
			mode = "dark"
		}
		r.notifyf(notify.LevelInfo, "%s mode activated", mode)
	})

	r.bus.SubscribePersistFailed(func(p PersistFailedPayload) {
		r.notifyf(notify.LevelError, "%s saved in memory only: %s", p.Op, p.Err)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
