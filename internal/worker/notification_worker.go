package worker

import (
	"context"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/events"
	"github.com/spec-kit/salon-booking/internal/observability"
	"github.com/spec-kit/salon-booking/internal/service"
)

// StartNotificationWorker registers notification handlers and the metrics
// subscribers on the dispatcher. Either collaborator may be nil.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, metrics *observability.Metrics) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher == nil || metrics == nil {
		return
	}
	for _, et := range []events.EventType{
		events.EventBookingCreated, events.EventBookingStatusChanged, events.EventBookingDeleted,
	} {
		dispatcher.Subscribe(et, bookingCounter(metrics))
	}
	dispatcher.Subscribe(events.EventUserLoggedIn, func(context.Context, events.Event) error {
		metrics.RecordLogin()
		return nil
	})
}

func bookingCounter(metrics *observability.Metrics) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		metrics.RecordBookingEvent(string(event.Type), string(eventStatus(event)))
		return nil
	}
}

// eventStatus is the booking status an event leaves behind.
func eventStatus(event events.Event) domain.BookingStatus {
	switch p := event.Payload.(type) {
	case events.BookingCreatedPayload:
		return domain.BookingStatusPending
	case events.BookingStatusChangedPayload:
		return p.NewStatus
	case events.BookingDeletedPayload:
		return p.Status
	}
	return ""
}
