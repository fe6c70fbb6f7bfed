package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentIndex is the full-text index record for a document. Nullable
// fields are pointers: the index service may return partial documents.
type DocumentIndex struct {
	Id                 string
	DocumentId         uuid.UUID
	FileName           string
	OriginalName       string
	ExtractedText      string
	Description        string
	DocumentType       string
	Tags               string // comma-joined
	Department         string
	UploadedByUsername string
	CreatedAt          *time.Time // calendar date, no time component
	IsActive           *bool
}

// Pageable is a page request: zero-based page number plus page size.
type Pageable struct {
	Page int
	Size int
}

// DocumentIndexPage is one page of index hits. Total carries the total
// hit count reported by the index for the whole query, not the length
// of Items.
type DocumentIndexPage struct {
	Items []*DocumentIndex
	Page  int
	Size  int
	Total int64
}

// EmptyDocumentIndexPage returns a page with no items for the request.
func EmptyDocumentIndexPage(pageable Pageable) DocumentIndexPage {
	return DocumentIndexPage{Items: []*DocumentIndex{}, Page: pageable.Page, Size: pageable.Size}
}
