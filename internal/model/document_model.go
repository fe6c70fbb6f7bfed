package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName           string         `gorm:"type:varchar(255);not null;index"`
	OriginalName       string         `gorm:"type:varchar(255);not null"`
	FilePath           string         `gorm:"type:varchar(500)"`
	MimeType           string         `gorm:"type:varchar(100)"`
	FileSize           int64          `gorm:"not null;default:0"`
	DocumentType       string         `gorm:"type:varchar(100);index"`
	Department         string         `gorm:"type:varchar(100);index"`
	Description        string         `gorm:"type:text"`
	Tags               string         `gorm:"type:text"`
	ExtractedText      string         `gorm:"type:text"`
	UploadedById       uuid.UUID      `gorm:"type:uuid;not null;index"`
	UploadedByUsername string         `gorm:"type:varchar(100)"`
	IsActive           bool           `gorm:"not null;default:true"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
