package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/enterprise-admin/internal"
	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/enterprise-admin/internal/core/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrUsernameTaken = internal.NewValidationError("username already exists", internal.ErrCodeDuplicate)

type Service struct {
	users      UserRepository
	sessions   SessionStore
	signer     TokenSigner
	sessionTTL time.Duration
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(users UserRepository, sessions SessionStore, signer TokenSigner, sessionTTL time.Duration, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		signer:     signer,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Register(dto RegisterDTO) (*userDatamodel.User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Error("failed to look up username", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: hash,
		Email:        dto.Email,
		Department:   dto.Department,
		Role:         coreUser.RoleEmployee,
	}
	if err := s.users.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Error("failed to load user for login", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to log in", err)
	}
	if u == nil || VerifyPassword(u.PasswordHash, dto.Password) != nil {
		s.logger.Warn("login rejected", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.logger.Error("failed to store session", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("failed to log in", err)
	}

	token, err := s.signer.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, internal.NewInternalError("failed to log in", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return &LoginResult{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      UserSummary{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

// Logout drops the server-side session. Unknown or malformed tokens are
// ignored so logout always succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := s.signer.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		s.logger.Error("failed to delete session", "error", err)
		return internal.NewInternalError("failed to log out", err)
	}
	return nil
}

// Resolve maps a client token to the current principal. The role is read
// from the user row so role changes apply to live sessions.
func (s *Service) Resolve(ctx context.Context, token string) (*coreUser.Principal, error) {
	if token == "" {
		return nil, internal.ErrNotLoggedIn
	}

	sid, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.ErrSessionExpired
		}
		return nil, internal.ErrInvalidSession
	}

	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if sess == nil {
		return nil, internal.ErrInvalidSession
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, sid); err != nil {
			s.logger.Warn("failed to delete expired session", "error", err, "user_id", sess.UserID)
		}
		return nil, internal.ErrSessionExpired
	}

	u, err := s.users.GetByID(sess.UserID)
	if err != nil {
		s.logger.Error("failed to load session user", "error", err, "user_id", sess.UserID)
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if u == nil {
		return nil, internal.ErrInvalidSession
	}

	return &coreUser.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func (s *Service) CurrentUser(p *coreUser.Principal) (*Profile, error) {
	if p == nil {
		return nil, internal.ErrNotLoggedIn
	}
	u, err := s.users.GetByID(p.UserID)
	if err != nil {
		s.logger.Error("failed to load current user", "error", err, "user_id", p.UserID)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	profile := ProfileFromDataModel(u)
	return &profile, nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
