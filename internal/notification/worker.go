package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/enterprise-admin/internal"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

// ErrUndeliverable marks a message that no retry can deliver, such as one
// with an unparseable address.
var ErrUndeliverable = errors.New("undeliverable message")

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *mail.Client
	from   string
}

func NewSMTPSender(cfg internal.SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port), mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("%w: set sender: %v", ErrUndeliverable, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("%w: set recipient: %v", ErrUndeliverable, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return s.client.DialAndSendWithContext(ctx, m)
}

// Consumer drains the notification queue into a Sender.
type Consumer struct {
	sender Sender
	logger *slog.Logger
}

func NewConsumer(sender Sender, logger *slog.Logger) *Consumer {
	return &Consumer{sender: sender, logger: logger}
}

// Run blocks until ctx is cancelled or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed")
				return
			}
			c.Handle(ctx, d)
		}
	}
}

// Handle acks after a successful send. Malformed payloads and undeliverable
// messages are dropped; dial and send failures go back on the queue.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil || msg.To == "" {
		c.logger.Error("dropping malformed notification", "error", err, "delivery_tag", d.DeliveryTag)
		_ = d.Nack(false, false)
		return
	}

	if err := c.sender.Send(ctx, msg); err != nil {
		if errors.Is(err, ErrUndeliverable) {
			c.logger.Error("dropping undeliverable notification", "error", err, "to", msg.To)
			_ = d.Nack(false, false)
			return
		}
		c.logger.Error("failed to send notification", "error", err, "to", msg.To)
		_ = d.Nack(false, true)
		return
	}

	c.logger.Info("notification sent", "to", msg.To, "subject", msg.Subject)
	_ = d.Ack(false)
}
