package user

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// ProjectOwnerRole marks the lead member of a project.
const ProjectOwnerRole = "负责人"

func IsValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller of a request. It is resolved once by
// the session middleware and handed to services explicitly.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

func (p *Principal) IsManager() bool {
	return p != nil && p.Role == RoleManager
}

func (p *Principal) IsManagerOrAdmin() bool {
	return p.IsAdmin() || p.IsManager()
}

func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
