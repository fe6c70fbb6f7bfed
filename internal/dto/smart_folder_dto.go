package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSmartFolderRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Definition  string `json:"definition"`
	Scope       string `json:"scope"`
}

type CreateSmartFolderResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateSmartFolderRequest struct {
	Id          uuid.UUID
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Definition  *string `json:"definition"`
	Scope       *string `json:"scope"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateSmartFolderResponse struct {
	Id uuid.UUID `json:"id"`
}

type SmartFolderResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Definition  string    `json:"definition"`
	Scope       string    `json:"scope"`
	OwnerId     uuid.UUID `json:"owner_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EvaluateSmartFolderResponse struct {
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
	Total int64               `json:"total"`
	Items []*SearchResultItem `json:"items"`
}
