package project

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	projectDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/project"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
)

var (
	ErrProjectNotFound = internal.NewNotFoundError("project not found", internal.ErrCodeProjectNotFound)
	ErrAlreadyMember   = internal.NewValidationError("user is already a member of this project", internal.ErrCodeDuplicate)
)

// RepositoryAPI lookups return nil, nil when the row does not exist.
type RepositoryAPI interface {
	GetByID(id int64) (*projectDatamodel.Project, error)
	// Create inserts the project and its owner membership together.
	Create(p *projectDatamodel.Project, ownerRole string) error
	GetMember(projectID, userID int64) (*projectDatamodel.ProjectMember, error)
	AddMember(m *projectDatamodel.ProjectMember) error
	MembershipsOf(userID int64) ([]projectDatamodel.Membership, error)
	Members(projectID int64) ([]projectDatamodel.MemberDetail, error)
	ProjectIDsWithRole(userID int64, role string) ([]int64, error)
}

type UserLookup interface {
	GetByID(id int64) (*userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	users  UserLookup
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, users UserLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Create(p *coreUser.Principal, dto CreateProjectDTO) (*Project, error) {
	if !p.IsManagerOrAdmin() {
		s.logger.Warn("create project denied: insufficient role", "user_id", p.UserID, "role", p.Role)
		return nil, internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &projectDatamodel.Project{
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   p.UserID,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(row, coreUser.ProjectOwnerRole); err != nil {
		s.logger.Error("failed to create project", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("project created", "project_id", row.ID, "user_id", p.UserID)
	return FromDataModel(row), nil
}

func (s *Service) AddMember(p *coreUser.Principal, projectID int64, dto AddMemberDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", projectID)
		return internal.NewInternalError("failed to add member", err)
	}
	if proj == nil {
		return ErrProjectNotFound
	}

	if !p.IsAdmin() {
		owner, err := s.IsProjectOwner(p.UserID, projectID)
		if err != nil {
			return internal.NewInternalError("failed to add member", err)
		}
		if !owner {
			s.logger.Warn("add member denied: not project owner", "user_id", p.UserID, "project_id", projectID)
			return internal.ErrForbidden
		}
	}

	u, err := s.users.GetByID(dto.UserID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", dto.UserID)
		return internal.NewInternalError("failed to add member", err)
	}
	if u == nil {
		return internal.ErrUserNotFound
	}

	existing, err := s.repo.GetMember(projectID, dto.UserID)
	if err != nil {
		return internal.NewInternalError("failed to add member", err)
	}
	if existing != nil {
		return ErrAlreadyMember
	}

	if err := s.repo.AddMember(&projectDatamodel.ProjectMember{ProjectID: projectID, UserID: dto.UserID, Role: dto.Role}); err != nil {
		s.logger.Error("failed to add project member", "error", err, "project_id", projectID, "member_id", dto.UserID)
		return internal.NewInternalError("failed to add member", err)
	}

	s.logger.Info("project member added", "project_id", projectID, "member_id", dto.UserID, "role", dto.Role)
	return nil
}

func (s *Service) Detail(p *coreUser.Principal, projectID int64) (*DetailResponse, error) {
	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to get project", err)
	}
	if proj == nil {
		return nil, ErrProjectNotFound
	}

	members, err := s.repo.Members(projectID)
	if err != nil {
		s.logger.Error("failed to get project members", "error", err, "project_id", projectID)
		return nil, internal.NewInternalError("failed to get project", err)
	}

	if !p.IsAdmin() && !hasMember(members, p.UserID) {
		s.logger.Warn("project detail denied: not a member", "user_id", p.UserID, "project_id", projectID)
		return nil, internal.ErrForbidden
	}

	out := detailResponse(FromDataModel(proj), members)
	return &out, nil
}

func (s *Service) MyProjects(p *coreUser.Principal) ([]MembershipResponse, error) {
	return s.ProjectsOf(p.UserID)
}

// FindProject returns nil, nil when the project does not exist.
func (s *Service) FindProject(projectID int64) (*Project, error) {
	row, err := s.repo.GetByID(projectID)
	if err != nil || row == nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) IsProjectOwner(userID, projectID int64) (bool, error) {
	m, err := s.repo.GetMember(projectID, userID)
	if err != nil {
		s.logger.Error("failed to check project ownership", "error", err, "user_id", userID, "project_id", projectID)
		return false, err
	}
	return m != nil && m.Role == coreUser.ProjectOwnerRole, nil
}

func (s *Service) OwnedProjectIDs(userID int64) ([]int64, error) {
	return s.repo.ProjectIDsWithRole(userID, coreUser.ProjectOwnerRole)
}

func (s *Service) ProjectsOf(userID int64) ([]MembershipResponse, error) {
	rows, err := s.repo.MembershipsOf(userID)
	if err != nil {
		s.logger.Error("failed to get memberships", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get projects", err)
	}
	out := make([]MembershipResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, membershipFromDataModel(m))
	}
	return out, nil
}

func hasMember(members []projectDatamodel.MemberDetail, userID int64) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
