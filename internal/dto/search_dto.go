package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query         string
	DocumentTypes []string
	Departments   []string
	IsActive      *bool
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Page          int
	Size          int
}

type SearchResultItem struct {
	Id                 string     `json:"id"`
	DocumentId         uuid.UUID  `json:"document_id"`
	FileName           string     `json:"file_name"`
	OriginalName       string     `json:"original_name"`
	DocumentType       string     `json:"document_type"`
	Department         string     `json:"department"`
	Tags               string     `json:"tags"`
	UploadedByUsername string     `json:"uploaded_by_username"`
	CreatedAt          *time.Time `json:"created_at"`
	IsActive           *bool      `json:"is_active"`
}

type SearchResponse struct {
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
	Total      int64                `json:"total"`
	Items      []*SearchResultItem  `json:"items"`
	Highlights map[string]string    `json:"highlights"`
}
