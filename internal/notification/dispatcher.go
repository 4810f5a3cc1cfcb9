package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
)

type RecipientLookup interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

// Dispatcher turns domain events into email messages for their recipients.
type Dispatcher struct {
	users     RecipientLookup
	publisher Publisher
	logger    *slog.Logger
}

func NewDispatcher(users RecipientLookup, publisher Publisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

func (d *Dispatcher) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeMailReceived, d.handleMailReceived)
	bus.Subscribe(events.EventTypeApprovalDecided, d.handleApprovalDecided)
}

func (d *Dispatcher) handleMailReceived(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.MailReceivedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}
	return d.send(ctx, e.ReceiverID,
		"New mail: "+e.Subject,
		fmt.Sprintf("You have received a new internal mail (#%d): %s", e.MailID, e.Subject))
}

func (d *Dispatcher) handleApprovalDecided(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ApprovalDecidedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}
	return d.send(ctx, e.RequesterID,
		fmt.Sprintf("Your %s request was %s", e.Kind, e.Status),
		fmt.Sprintf("Your %s request #%d has been %s.", e.Kind, e.RecordID, e.Status))
}

// send is a no-op for users without an email address.
func (d *Dispatcher) send(ctx context.Context, userID int64, subject, body string) error {
	u, err := d.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("lookup recipient %d: %w", userID, err)
	}
	if u == nil || u.Email == nil || *u.Email == "" {
		d.logger.Debug("notification skipped: recipient has no email", "user_id", userID)
		return nil
	}

	if err := d.publisher.Publish(ctx, Message{To: *u.Email, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
