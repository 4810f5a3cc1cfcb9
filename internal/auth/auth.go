package auth

import (
	"context"
	"time"

	userDatamodel "github.com/frahmantamala/enterprise-admin/internal/core/datamodel/user"
)

// Session is the server-side half of a login. The client only holds a
// signed token naming the session id.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	Role      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore persists sessions. Get returns nil, nil for unknown ids.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository is the slice of user storage authentication needs.
// Lookups return nil, nil when the user does not exist.
type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
}

// TokenSigner binds a session id into an opaque client token.
type TokenSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (sessionID string, err error)
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Profile struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       *string `json:"email"`
	Department  *string `json:"department"`
	Role        string  `json:"role"`
	Description *string `json:"description"`
}

func ProfileFromDataModel(u *userDatamodel.User) Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Department:  u.Department,
		Role:        u.Role,
		Description: u.Description,
	}
}
