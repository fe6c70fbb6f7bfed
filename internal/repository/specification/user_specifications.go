package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUsername filters users by username
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ForRecipient keeps notifications addressed to the user or broadcast to everyone
type ForRecipient struct {
	UserID uuid.UUID
}

func (s ForRecipient) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? OR user_id IS NULL", s.UserID)
}
