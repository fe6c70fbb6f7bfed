package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         UserRole
	Department   string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// IsAdmin reports whether the user has unrestricted document visibility.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
