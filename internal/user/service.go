package user

import (
	"log/slog"

	"github.com/frahmantamala/enterprise-admin/internal"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/frahmantamala/enterprise-admin/internal/project"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailInUse       = internal.NewValidationError("email already in use", internal.ErrCodeDuplicate)
	ErrUsernameInUse    = internal.NewValidationError("username already exists", internal.ErrCodeDuplicate)
	ErrWrongPassword    = internal.NewValidationError("old password is incorrect", internal.ErrCodeInvalidCredentials)
	ErrInvalidRoleValue = internal.NewValidationError("invalid role", internal.ErrCodeInvalidRole)
)

// Repository lookups return nil, nil when the user does not exist.
type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	UpdatePassword(id int64, hash string) error
	ListNonAdminWithProjectCount() ([]userDatamodel.WithProjectCount, error)
}

// Memberships resolves the projects a user belongs to.
type Memberships interface {
	ProjectsOf(userID int64) ([]project.MembershipResponse, error)
}

type Service struct {
	repo       Repository
	projects   Memberships
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, projects Memberships, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		projects:   projects,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Me(p *coreUser.Principal) (*Profile, error) {
	return s.profile(p.UserID)
}

func (s *Service) Detail(p *coreUser.Principal, targetID int64) (*Profile, error) {
	if !p.IsAdmin() {
		s.logger.Warn("user detail denied: admin required", "user_id", p.UserID, "target_id", targetID)
		return nil, internal.ErrForbidden
	}
	return s.profile(targetID)
}

func (s *Service) Update(p *coreUser.Principal, dto UpdateProfileDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.load(p.UserID)
	if err != nil {
		return err
	}

	if dto.Email != nil {
		if err := s.ensureEmailFree(*dto.Email, u.ID); err != nil {
			return err
		}
		u.Email = dto.Email
	}
	if dto.Department != nil {
		u.Department = dto.Department
	}
	if dto.Description != nil {
		u.Description = dto.Description
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", u.ID)
		return internal.NewInternalError("failed to update profile", err)
	}

	s.logger.Info("profile updated", "user_id", u.ID)
	return nil
}

func (s *Service) ChangePassword(p *coreUser.Principal, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.load(p.UserID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.OldPassword)) != nil {
		s.logger.Warn("change password rejected: wrong old password", "user_id", u.ID)
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	if err := s.repo.UpdatePassword(u.ID, string(hash)); err != nil {
		s.logger.Error("failed to update password", "error", err, "user_id", u.ID)
		return internal.NewInternalError("failed to change password", err)
	}

	s.logger.Info("password changed", "user_id", u.ID)
	return nil
}

func (s *Service) List(p *coreUser.Principal) ([]ListItem, error) {
	if !p.IsAdmin() {
		s.logger.Warn("user list denied: admin required", "user_id", p.UserID)
		return nil, internal.ErrForbidden
	}

	rows, err := s.repo.ListNonAdminWithProjectCount()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	out := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, listItemFromDataModel(row))
	}
	return out, nil
}

func (s *Service) AdminUpdate(p *coreUser.Principal, targetID int64, dto AdminUpdateDTO) error {
	if !p.IsAdmin() {
		s.logger.Warn("admin update denied: admin required", "user_id", p.UserID, "target_id", targetID)
		return internal.ErrForbidden
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.load(targetID)
	if err != nil {
		return err
	}

	if dto.Role != nil && !coreUser.IsValidRole(*dto.Role) {
		return ErrInvalidRoleValue
	}

	if dto.Username != nil && *dto.Username != u.Username {
		existing, err := s.repo.GetByUsername(*dto.Username)
		if err != nil {
			return internal.NewInternalError("failed to update user", err)
		}
		if existing != nil {
			return ErrUsernameInUse
		}
		u.Username = *dto.Username
	}
	if dto.Email != nil {
		if err := s.ensureEmailFree(*dto.Email, u.ID); err != nil {
			return err
		}
		u.Email = dto.Email
	}
	if dto.Department != nil {
		u.Department = dto.Department
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "target_id", u.ID)
		return internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated by admin", "user_id", p.UserID, "target_id", u.ID, "role", u.Role)
	return nil
}

func (s *Service) profile(userID int64) (*Profile, error) {
	u, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ProjectsOf(u.ID)
	if err != nil {
		return nil, err
	}
	return profileFromDataModel(u, projects), nil
}

func (s *Service) load(userID int64) (*userDatamodel.User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ensureEmailFree(email string, ownerID int64) error {
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		s.logger.Error("failed to look up email", "error", err)
		return internal.NewInternalError("failed to check email", err)
	}
	if existing != nil && existing.ID != ownerID {
		return ErrEmailInUse
	}
	return nil
}
