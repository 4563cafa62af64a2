package models

// Role is a flat enum of every kind of account in the system.
type Role string

const (
	RoleAdmin              Role = "admin"
	RoleClient             Role = "client"
	RoleOperationalManager Role = "operational-manager"
	RoleHR                 Role = "hr"
	RoleSales              Role = "sales"
	RoleAccountant         Role = "accountant"
	RoleCaptain            Role = "captain"
	RoleSubCaptain         Role = "sub-captain"
	RoleSeniorWaiter       Role = "senior-waiter"
	RoleWaiter             Role = "waiter"
	RoleHelper             Role = "helper"
)

var allRoles = []Role{
	RoleAdmin, RoleClient, RoleOperationalManager, RoleHR, RoleSales, RoleAccountant,
	RoleCaptain, RoleSubCaptain, RoleSeniorWaiter, RoleWaiter, RoleHelper,
}

// AllRoles returns the 11 roles in display order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r Role) Valid() bool {
	for _, role := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsWaiterTier reports whether staff with this role can be assigned to an event.
func (r Role) IsWaiterTier() bool {
	switch r {
	case RoleCaptain, RoleSubCaptain, RoleSeniorWaiter, RoleWaiter:
		return true
	}
	return false
}

// IsStaffRole reports whether the role belongs on a staff record (field workers).
func (r Role) IsStaffRole() bool {
	return r.IsWaiterTier() || r == RoleHelper
}

// IsBackOffice reports whether the role works the back office dashboards.
func (r Role) IsBackOffice() bool {
	switch r {
	case RoleAdmin, RoleOperationalManager, RoleHR, RoleSales, RoleAccountant:
		return true
	}
	return false
}
