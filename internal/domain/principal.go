package domain

// Principal аутентифицированный пользователь, от имени которого выполняется операция
// Все проверки ролей проходят через методы Principal, а не через сравнение строк на месте
type Principal struct {
	UserID int64
	Role   Role
}

// NewPrincipal создает Principal из пользователя
func NewPrincipal(u *User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

// HasRole returns true if the principal has one of the given roles
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsSuperAdmin returns true for SUPERADMIN
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// IsStudent returns true for STUDENT
func (p Principal) IsStudent() bool {
	return p.Role == RoleStudent
}

// IsOwner returns true for OWNER
func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}

// Is returns true if the principal is the user with the given id
func (p Principal) Is(userID *int64) bool {
	return userID != nil && *userID == p.UserID
}
