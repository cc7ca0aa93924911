package auth

// Role represents user permission levels
type Role string

const (
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the caller is an administrator
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsStaff reports whether the caller works the back office (vendor or admin)
func (p *Principal) IsStaff() bool {
	return p != nil && (p.Role == RoleVendor || p.Role == RoleAdmin)
}

// CanActFor reports whether the caller may read or act on a resource owned by userID
func (p *Principal) CanActFor(userID string) bool {
	if p == nil {
		return false
	}
	return p.UserID == userID || p.IsStaff()
}
