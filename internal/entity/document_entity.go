package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is the relational record behind an uploaded file. The search
// copy of it lives in the full-text index as a DocumentIndex.
type Document struct {
	Id                 uuid.UUID
	FileName           string
	OriginalName       string
	FilePath           string
	MimeType           string
	FileSize           int64
	DocumentType       string
	Department         string
	Description        string
	Tags               string // comma-joined
	ExtractedText      string
	UploadedById       uuid.UUID
	UploadedByUsername string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	DeletedAt          *time.Time
	IsDeleted          bool
}
