package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	FileName      string `json:"file_name" validate:"required"`
	OriginalName  string `json:"original_name"`
	FilePath      string `json:"file_path"`
	MimeType      string `json:"mime_type"`
	FileSize      int64  `json:"file_size"`
	DocumentType  string `json:"document_type"`
	Department    string `json:"department"`
	Description   string `json:"description"`
	Tags          string `json:"tags"`
	ExtractedText string `json:"extracted_text"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateDocumentRequest struct {
	Id            uuid.UUID
	FileName      string `json:"file_name" validate:"required"`
	DocumentType  string `json:"document_type"`
	Department    string `json:"department"`
	Description   string `json:"description"`
	Tags          string `json:"tags"`
	ExtractedText string `json:"extracted_text"`
	IsActive      *bool  `json:"is_active"`
}

type UpdateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type DocumentResponse struct {
	Id                 uuid.UUID  `json:"id"`
	FileName           string     `json:"file_name"`
	OriginalName       string     `json:"original_name"`
	FilePath           string     `json:"file_path"`
	MimeType           string     `json:"mime_type"`
	FileSize           int64      `json:"file_size"`
	DocumentType       string     `json:"document_type"`
	Department         string     `json:"department"`
	Description        string     `json:"description"`
	Tags               string     `json:"tags"`
	UploadedByUsername string     `json:"uploaded_by_username"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

type ListDocumentsRequest struct {
	Department   string `query:"department"`
	DocumentType string `query:"document_type"`
	Page         int    `query:"page"`
	Size         int    `query:"size"`
}

type ListDocumentsResponse struct {
	Items []*DocumentResponse `json:"items"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int64               `json:"total"`
}

// PublishIndexDocumentMessage is the payload of the internal indexing
// pipeline message.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
	Deleted    bool      `json:"deleted"`
}
