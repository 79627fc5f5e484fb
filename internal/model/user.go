package model

import "time"

// Role is the staff role of a portal user. It decides which routes and
// features the user can reach.
type Role string

const (
	RoleDoctor        Role = "DOCTOR"
	RoleLabStaff      Role = "LAB_STAFF"
	RolePharmacyStaff Role = "PHARMACY_STAFF"
	RoleAdmin         Role = "ADMIN"
)

// Roles lists every role in display order.
var Roles = []Role{RoleDoctor, RoleLabStaff, RolePharmacyStaff, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleLabStaff, RolePharmacyStaff, RoleAdmin:
		return true
	}
	return false
}

// Badge returns the display badge for the role.
func (r Role) Badge() Badge {
	switch r {
	case RoleDoctor:
		return newBadge(VariantPrimary, string(r))
	case RoleLabStaff:
		return newBadge(VariantInfo, string(r))
	case RolePharmacyStaff:
		return newBadge(VariantSuccess, string(r))
	case RoleAdmin:
		return newBadge(VariantDanger, string(r))
	}
	return newBadge(VariantSecondary, string(r))
}

// User is a staff account as returned by the backend. The password is
// write-only and therefore not part of this type.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser is the payload for creating a user.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// UserUpdate is the payload for editing a user. Username cannot be changed
// and is deliberately absent; Password is only sent when set.
type UserUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// AuthState is the process-wide authentication state.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user,omitempty"`
	Loading         bool   `json:"loading"`
	Error           string `json:"error,omitempty"`
}

// HasRole reports whether the state is authenticated with one of roles. An
// empty roles list matches any authenticated user.
func (s AuthState) HasRole(roles ...Role) bool {
	if !s.IsAuthenticated || s.User == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}
