package specification

import (
	"gorm.io/gorm"
)

// ByScope filters smart folders by visibility scope
type ByScope struct {
	Scope string
}

func (s ByScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scope = ?", s.Scope)
}
