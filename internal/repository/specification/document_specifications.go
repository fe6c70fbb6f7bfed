package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentSearchQuery filters documents by name or extracted text
type DocumentSearchQuery struct {
	Query string
}

func (s DocumentSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	// ILIKE for Postgres (case insensitive)
	return db.Where("file_name ILIKE ? OR original_name ILIKE ? OR extracted_text ILIKE ?", pattern, pattern, pattern)
}

// ByDepartment filters documents by department
type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

// ByDocumentType filters documents by type
type ByDocumentType struct {
	DocumentType string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_type = ?", s.DocumentType)
}

// ByUploader filters documents by the uploading user
type ByUploader struct {
	UserID uuid.UUID
}

func (s ByUploader) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("uploaded_by_id = ?", s.UserID)
}

// ActiveOnly keeps only active documents
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = true")
}

// CreatedBetween filters by creation date range (inclusive bounds)
type CreatedBetween struct {
	From *time.Time
	To   *time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	if s.From != nil {
		db = db.Where("created_at >= ?", *s.From)
	}
	if s.To != nil {
		db = db.Where("created_at <= ?", *s.To)
	}
	return db
}
