package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/trip-management/internal"
	"github.com/frahmantamala/trip-management/internal/core/events"
	"github.com/frahmantamala/trip-management/internal/department"
)

// SubscriptionRepository lists who gets mailed for a queue.
type SubscriptionRepository interface {
	ListActiveByDepartment(dep department.Department) ([]*EmailSubscription, error)
}

// Mailer sends a single message. The docservice client implements it.
type Mailer interface {
	SendMail(ctx context.Context, to, senderName, subject, body string) error
}

// Dispatcher mails department subscribers when a trip enters their queue.
// Delivery is best-effort: a failed send is logged and the rest of the
// subscribers are still attempted.
type Dispatcher struct {
	subscriptions SubscriptionRepository
	mailer        Mailer
	mail          internal.MailConfig
	logger        *slog.Logger
}

func NewDispatcher(subscriptions SubscriptionRepository, mailer Mailer, mail internal.MailConfig, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		subscriptions: subscriptions,
		mailer:        mailer,
		mail:          mail,
		logger:        logger,
	}
}

// RegisterHandlers subscribes the dispatcher to queue admissions on the bus.
func (d *Dispatcher) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeQueueAdmitted, func(ctx context.Context, event events.Event) error {
		admitted, ok := event.(*events.QueueAdmittedEvent)
		if !ok {
			d.logger.Error("unexpected event payload", "event_type", event.EventType())
			return nil
		}
		d.NotifyQueue(ctx, admitted.TripID, admitted.Department)
		return nil
	})
}

// NotifyQueue mails every active subscriber of the department's queue.
func (d *Dispatcher) NotifyQueue(ctx context.Context, tripID int64, dep department.Department) {
	subscribers, err := d.subscriptions.ListActiveByDepartment(dep)
	if err != nil {
		d.logger.Error("failed to list queue subscribers",
			"error", err, "department", dep, "trip_id", tripID)
		return
	}

	if len(subscribers) == 0 {
		d.logger.Debug("no subscribers for queue", "department", dep)
		return
	}

	body := fmt.Sprintf("В очереди %q новая заявка", dep.Label())
	for _, sub := range subscribers {
		if err := d.mailer.SendMail(ctx, sub.Email, d.mail.SenderName, d.mail.Subject, body); err != nil {
			d.logger.Error("failed to send queue notification",
				"error", err, "email", sub.Email, "department", dep, "trip_id", tripID)
			continue
		}
		d.logger.Info("queue notification sent",
			"email", sub.Email, "department", dep, "trip_id", tripID)
	}
}
