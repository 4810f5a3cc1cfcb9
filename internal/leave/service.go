package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	leaveDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/leave"
	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

var ErrLeaveNotFound = internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveNotFound)

type RepositoryAPI interface {
	Create(l *leaveDatamodel.LeaveRequest) error
	// GetByID returns nil, nil when the request does not exist.
	GetByID(id int64) (*leaveDatamodel.View, error)
	ListByUser(userID int64) ([]leaveDatamodel.View, error)
	ListPending() ([]leaveDatamodel.View, error)
	ListAll() ([]leaveDatamodel.View, error)
	// Decide reports false when the request was no longer pending.
	Decide(id int64, status string, approverID int64, at time.Time) (bool, error)
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	recorder  approval.DecisionRecorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, publisher events.Publisher, recorder approval.DecisionRecorder, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if recorder == nil {
		recorder = approval.NopRecorder{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Submit(p *coreUser.Principal, dto SubmitDTO) (int64, error) {
	period, verr := dto.Validate()
	if verr != nil {
		return 0, verr
	}

	row := &leaveDatamodel.LeaveRequest{
		UserID:      p.UserID,
		LeaveType:   dto.LeaveType,
		StartDate:   period.Start,
		EndDate:     period.End,
		Reason:      dto.Reason,
		Status:      approval.StatusPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to store leave request", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to submit leave request", err)
	}

	s.logger.Info("leave request submitted", "leave_id", row.ID, "user_id", p.UserID,
		"days", DurationDays(row.StartDate, row.EndDate))
	return row.ID, nil
}

func (s *Service) ListMine(p *coreUser.Principal) ([]Request, error) {
	rows, err := s.repo.ListByUser(p.UserID)
	if err != nil {
		s.logger.Error("failed to list own leave requests", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}
	return fromViews(rows), nil
}

func (s *Service) ListPending(p *coreUser.Principal) ([]Request, error) {
	if err := s.requireApprover(p, "list pending leave"); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListPending()
	if err != nil {
		s.logger.Error("failed to list pending leave requests", "error", err)
		return nil, internal.NewInternalError("failed to list pending leave requests", err)
	}
	return fromViews(rows), nil
}

func (s *Service) ListAll(p *coreUser.Principal) ([]Request, error) {
	if err := s.requireApprover(p, "list all leave"); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}
	return fromViews(rows), nil
}

// Approve applies a one-shot decision. A request already decided, either
// before the call or by a concurrent approver, yields ErrAlreadyProcessed.
func (s *Service) Approve(ctx context.Context, p *coreUser.Principal, id int64, dto approval.ActionDTO) (string, error) {
	if err := s.requireApprover(p, "approve leave"); err != nil {
		return "", err
	}

	row, err := s.get(id)
	if err != nil {
		return "", err
	}
	if row.Status != approval.StatusPending {
		return "", internal.ErrAlreadyProcessed
	}

	status, err := approval.StatusForAction(dto.Action)
	if err != nil {
		return "", err
	}

	decided, err := s.repo.Decide(id, status, p.UserID, s.now().UTC())
	if err != nil {
		s.logger.Error("failed to store decision", "error", err, "leave_id", id)
		return "", internal.NewInternalError("failed to approve leave request", err)
	}
	if !decided {
		s.logger.Warn("leave request decided concurrently", "leave_id", id, "user_id", p.UserID)
		return "", internal.ErrAlreadyProcessed
	}

	s.logger.Info("leave request decided", "leave_id", id, "status", status, "user_id", p.UserID, "comment", dto.Comment)
	s.recorder.RecordDecision(events.ApprovalKindLeave, status)
	event := events.NewApprovalDecidedEvent(events.ApprovalKindLeave, id, row.UserID, p.UserID, status)
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Warn("approval notification failed", "error", err, "leave_id", id)
	}
	return status, nil
}

func (s *Service) Detail(p *coreUser.Principal, id int64) (*Request, error) {
	row, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if row.UserID != p.UserID && !p.IsManagerOrAdmin() {
		s.logger.Warn("leave detail denied", "user_id", p.UserID, "leave_id", id)
		return nil, internal.ErrForbidden
	}
	out := FromView(*row)
	return &out, nil
}

func (s *Service) requireApprover(p *coreUser.Principal, action string) error {
	if p.IsManagerOrAdmin() {
		return nil
	}
	s.logger.Warn(action+" denied: manager or admin required", "user_id", p.UserID, "role", p.Role)
	return internal.ErrForbidden
}

func (s *Service) get(id int64) (*leaveDatamodel.View, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get leave request", "error", err, "leave_id", id)
		return nil, internal.NewInternalError("failed to get leave request", err)
	}
	if row == nil {
		return nil, ErrLeaveNotFound
	}
	return row, nil
}
