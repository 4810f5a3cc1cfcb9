package reimbursement

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	"github.com/frahmantamala/enterprise-admin/internal/core/approval"
	reimbursementDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/reimbursement"
	"github.com/frahmantamala/enterprise-admin/internal/core/events"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/project"
)

var ErrReimbursementNotFound = internal.NewNotFoundError("reimbursement request not found", internal.ErrCodeReimbursementNotFound)

type RepositoryAPI interface {
	Create(r *reimbursementDatamodel.Reimbursement) error
	// GetByID returns nil, nil when the request does not exist.
	GetByID(id int64) (*reimbursementDatamodel.View, error)
	ListByUser(userID int64) ([]reimbursementDatamodel.View, error)
	// ListPending returns every pending request when projectIDs is nil.
	ListPending(projectIDs []int64) ([]reimbursementDatamodel.View, error)
	ListAll() ([]reimbursementDatamodel.View, error)
	// Decide moves a pending request to status. It reports false when the
	// request was no longer pending.
	Decide(id int64, status string, approverID int64, at time.Time) (bool, error)
}

// ProjectLookup is the read-only slice of the project service used here.
type ProjectLookup interface {
	FindProject(projectID int64) (*project.Project, error)
	IsProjectOwner(userID, projectID int64) (bool, error)
	OwnedProjectIDs(userID int64) ([]int64, error)
}

type Service struct {
	repo      RepositoryAPI
	projects  ProjectLookup
	publisher events.Publisher
	recorder  approval.DecisionRecorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, projects ProjectLookup, publisher events.Publisher, recorder approval.DecisionRecorder, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if recorder == nil {
		recorder = approval.NopRecorder{}
	}
	return &Service{
		repo:      repo,
		projects:  projects,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Submit(p *coreUser.Principal, dto SubmitDTO) (int64, error) {
	amount, verr := dto.Validate()
	if verr != nil {
		return 0, verr
	}

	proj, err := s.projects.FindProject(dto.ProjectID)
	if err != nil {
		s.logger.Error("failed to look up project", "error", err, "project_id", dto.ProjectID)
		return 0, internal.NewInternalError("failed to submit reimbursement", err)
	}
	if proj == nil {
		return 0, project.ErrProjectNotFound
	}

	row := &reimbursementDatamodel.Reimbursement{
		ProjectID:   proj.ID,
		UserID:      p.UserID,
		Amount:      amount,
		Purpose:     dto.Purpose,
		Status:      approval.StatusPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to store reimbursement", "error", err, "user_id", p.UserID)
		return 0, internal.NewInternalError("failed to submit reimbursement", err)
	}

	s.logger.Info("reimbursement submitted", "reimbursement_id", row.ID, "user_id", p.UserID, "amount", amount.String())
	return row.ID, nil
}

func (s *Service) ListMine(p *coreUser.Principal) ([]Request, error) {
	rows, err := s.repo.ListByUser(p.UserID)
	if err != nil {
		s.logger.Error("failed to list own reimbursements", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to list reimbursements", err)
	}
	return fromViews(rows), nil
}

// ListPending shows admins every pending request and managers only those
// on projects they lead.
func (s *Service) ListPending(p *coreUser.Principal) ([]Request, error) {
	var projectIDs []int64
	switch {
	case p.IsAdmin():
	case p.IsManager():
		ids, err := s.projects.OwnedProjectIDs(p.UserID)
		if err != nil {
			s.logger.Error("failed to load owned projects", "error", err, "user_id", p.UserID)
			return nil, internal.NewInternalError("failed to list pending reimbursements", err)
		}
		if len(ids) == 0 {
			return []Request{}, nil
		}
		projectIDs = ids
	default:
		s.logger.Warn("pending reimbursements denied", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}

	rows, err := s.repo.ListPending(projectIDs)
	if err != nil {
		s.logger.Error("failed to list pending reimbursements", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to list pending reimbursements", err)
	}
	return fromViews(rows), nil
}

// Approve applies action to a pending request. Only the first decision
// wins; later attempts get ErrAlreadyProcessed.
func (s *Service) Approve(ctx context.Context, p *coreUser.Principal, id int64, dto approval.ActionDTO) (string, error) {
	row, err := s.get(id)
	if err != nil {
		return "", err
	}

	allowed, err := s.canDecide(p, row.ProjectID)
	if err != nil {
		return "", err
	}
	if !allowed {
		s.logger.Warn("reimbursement approval denied", "user_id", p.UserID, "reimbursement_id", id)
		return "", internal.ErrForbidden
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
		s.logger.Error("failed to store decision", "error", err, "reimbursement_id", id)
		return "", internal.NewInternalError("failed to approve reimbursement", err)
	}
	if !decided {
		s.logger.Warn("reimbursement decided concurrently", "reimbursement_id", id, "user_id", p.UserID)
		return "", internal.ErrAlreadyProcessed
	}

	s.logger.Info("reimbursement decided", "reimbursement_id", id, "status", status, "user_id", p.UserID)
	s.recorder.RecordDecision(events.ApprovalKindReimbursement, status)
	event := events.NewApprovalDecidedEvent(events.ApprovalKindReimbursement, id, row.UserID, p.UserID, status)
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Warn("approval notification failed", "error", err, "reimbursement_id", id)
	}
	return status, nil
}

func (s *Service) ListAll(p *coreUser.Principal) ([]Request, error) {
	if !p.IsAdmin() {
		s.logger.Warn("list all reimbursements denied", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}
	rows, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list reimbursements", "error", err)
		return nil, internal.NewInternalError("failed to list reimbursements", err)
	}
	return fromViews(rows), nil
}

// Detail is visible to the submitter, admins and the project owner.
func (s *Service) Detail(p *coreUser.Principal, id int64) (*Request, error) {
	row, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if row.UserID != p.UserID {
		allowed, err := s.canDecide(p, row.ProjectID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			s.logger.Warn("reimbursement detail denied", "user_id", p.UserID, "reimbursement_id", id)
			return nil, internal.ErrForbidden
		}
	}
	out := FromView(*row)
	return &out, nil
}

func (s *Service) canDecide(p *coreUser.Principal, projectID int64) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	owner, err := s.projects.IsProjectOwner(p.UserID, projectID)
	if err != nil {
		return false, internal.NewInternalError("failed to check project ownership", err)
	}
	return owner, nil
}

func (s *Service) get(id int64) (*reimbursementDatamodel.View, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get reimbursement", "error", err, "reimbursement_id", id)
		return nil, internal.NewInternalError("failed to get reimbursement", err)
	}
	if row == nil {
		return nil, ErrReimbursementNotFound
	}
	return row, nil
}
