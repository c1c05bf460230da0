package domain

// RoleAdmin is the role required for category and product mutations.
const RoleAdmin = "Admin"

// AuthContext carries the identity decision supplied by the access collaborator
// for a single request. It is passed explicitly into every mutating operation
// instead of being read from ambient request state.
type AuthContext struct {
	Authenticated bool
	UserID        int64
	Role          string
}

// IsAdmin reports whether the caller is authenticated and holds the Admin role.
func (a AuthContext) IsAdmin() bool {
	return a.Authenticated && a.Role == RoleAdmin
}
