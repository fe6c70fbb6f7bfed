package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SmartFolder struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Definition  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	Scope       string         `gorm:"type:varchar(20);not null;default:'PRIVATE'"`
	OwnerId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	IsActive    bool           `gorm:"not null;default:true"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (SmartFolder) TableName() string {
	return "smart_folders"
}
