package enums

import "fmt"

// UserRole is the platform-level role carried on a user account.
type UserRole string

const (
	UserRoleClient   UserRole = "CLIENT"
	UserRolePT       UserRole = "PT_USER"
	UserRoleGymStaff UserRole = "GYM_STAFF"
	UserRoleAdmin    UserRole = "ADMIN"
)

var validUserRoles = []UserRole{
	UserRoleClient,
	UserRolePT,
	UserRoleGymStaff,
	UserRoleAdmin,
}

func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
