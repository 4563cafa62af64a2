package auth

import "staffing-backend/internal/models"

// Session identifies the caller of a service operation.
// Middleware builds it from the current user record and handlers pass it explicitly.
type Session struct {
	UserID string
	Name   string
	Role   models.Role
}

// HasRole reports whether the session holds any of the given roles.
func (s Session) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

func (s Session) IsClient() bool {
	return s.Role == models.RoleClient
}

// System is used for work not triggered by a person, such as bootstrap.
var System = Session{UserID: "system", Name: "system", Role: models.RoleAdmin}
