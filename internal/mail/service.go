package mail

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	mailDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/mail"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

var ErrMailNotFound = internal.NewNotFoundError("mail not found", internal.ErrCodeMailNotFound)

type RepositoryAPI interface {
	Create(m *mailDatamodel.Mail) error
	// GetByID returns nil, nil when the mail does not exist.
	GetByID(id int64) (*mailDatamodel.Mail, error)
	Inbox(userID int64) ([]mailDatamodel.View, error)
	Sent(userID int64) ([]mailDatamodel.View, error)
	MarkRead(id int64) error
	// CreateReply stores reply and flags the original as replied to.
	CreateReply(originalID int64, reply *mailDatamodel.Mail) error
}

type UserLookup interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

type Service struct {
	repo      RepositoryAPI
	users     UserLookup
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, users UserLookup, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Send(ctx context.Context, p *coreUser.Principal, dto SendDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	receiver, err := s.users.GetByID(dto.ReceiverID)
	if err != nil {
		s.logger.Error("failed to look up receiver", "error", err, "receiver_id", dto.ReceiverID)
		return 0, internal.NewInternalError("failed to send mail", err)
	}
	if receiver == nil {
		return 0, internal.NewNotFoundError("receiver not found", internal.ErrCodeUserNotFound)
	}

	m := &mailDatamodel.Mail{
		SenderID:   p.UserID,
		ReceiverID: receiver.ID,
		Subject:    dto.Subject,
		Content:    dto.Content,
		IsReply:    dto.IsReply,
		SentAt:     s.now(),
	}
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to store mail", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to send mail", err)
	}

	s.logger.Info("mail sent", "mail_id", m.ID, "user_id", p.UserID, "receiver_id", m.ReceiverID)
	s.notify(ctx, m)
	return m.ID, nil
}

func (s *Service) Inbox(p *coreUser.Principal) ([]InboxItem, error) {
	rows, err := s.repo.Inbox(p.UserID)
	if err != nil {
		s.logger.Error("failed to load inbox", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to load inbox", err)
	}
	out := make([]InboxItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInboxItem(row))
	}
	return out, nil
}

func (s *Service) Sent(p *coreUser.Principal) ([]SentItem, error) {
	rows, err := s.repo.Sent(p.UserID)
	if err != nil {
		s.logger.Error("failed to load sent mail", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to load sent mail", err)
	}
	out := make([]SentItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSentItem(row))
	}
	return out, nil
}

func (s *Service) MarkRead(p *coreUser.Principal, mailID int64) error {
	m, err := s.get(mailID)
	if err != nil {
		return err
	}
	if m.ReceiverID != p.UserID {
		s.logger.Warn("mark read denied: not the receiver", "user_id", p.UserID, "mail_id", mailID)
		return internal.ErrForbidden
	}
	if err := s.repo.MarkRead(mailID); err != nil {
		s.logger.Error("failed to mark mail read", "error", err, "mail_id", mailID)
		return internal.NewInternalError("failed to mark mail read", err)
	}
	return nil
}

func (s *Service) Reply(ctx context.Context, p *coreUser.Principal, mailID int64, dto ReplyDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	original, err := s.get(mailID)
	if err != nil {
		return 0, err
	}
	if original.ReceiverID != p.UserID {
		s.logger.Warn("reply denied: not the receiver", "user_id", p.UserID, "mail_id", mailID)
		return 0, internal.ErrForbidden
	}

	reply := &mailDatamodel.Mail{
		SenderID:   p.UserID,
		ReceiverID: original.SenderID,
		Subject:    replyPrefix + original.Subject,
		Content:    dto.Content,
		SentAt:     s.now(),
	}
	if err := s.repo.CreateReply(original.ID, reply); err != nil {
		s.logger.Error("failed to store reply", "error", err, "mail_id", mailID, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to reply", err)
	}

	s.logger.Info("mail replied", "mail_id", reply.ID, "original_id", original.ID, "user_id", p.UserID)
	s.notify(ctx, reply)
	return reply.ID, nil
}

func (s *Service) get(mailID int64) (*mailDatamodel.Mail, error) {
	m, err := s.repo.GetByID(mailID)
	if err != nil {
		s.logger.Error("failed to get mail", "error", err, "mail_id", mailID)
		return nil, internal.NewInternalError("failed to get mail", err)
	}
	if m == nil {
		return nil, ErrMailNotFound
	}
	return m, nil
}

// notify never fails the request; delivery problems are only logged.
func (s *Service) notify(ctx context.Context, m *mailDatamodel.Mail) {
	event := events.NewMailReceivedEvent(m.ID, m.SenderID, m.ReceiverID, m.Subject)
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Warn("mail notification failed", "error", err, "mail_id", m.ID)
	}
}
