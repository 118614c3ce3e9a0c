package model

import "gorm.io/gorm"

const (
	RoleIntern     = "intern"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `json:"username" gorm:"unique;not null"`
	Email    string `json:"email"`
	Password string `json:"-"` // hash bcrypt, tidak pernah ikut response
	Role     string `json:"role" gorm:"default:intern"`
	Division string `json:"division"`
	Foto     string `json:"photo"`
}

// IsPrivileged true untuk akun admin dan super-admin.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
