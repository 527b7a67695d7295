package domain

// Role enumerates what a caller is allowed to do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleFaculty    Role = "faculty"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleFaculty:
		return true
	}
	return false
}

// User is the identity of the caller as reported by the identity provider.
type User struct {
	ID          string
	DisplayName string
	Role        Role
}
