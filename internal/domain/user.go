package domain

// Role роль пользователя в системе
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleOwner      Role = "OWNER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// User пользователь (только чтение, управление аккаунтами вне этого сервиса)
type User struct {
	ID       int64
	Email    string
	FullName string
	Role     Role
	IsActive bool
}

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleOwner || r == RoleSuperAdmin
}
