package entity

import (
	"time"

	"github.com/google/uuid"
)

type SmartFolderScope string

const (
	SmartFolderScopePrivate    SmartFolderScope = "PRIVATE"
	SmartFolderScopeDepartment SmartFolderScope = "DEPARTMENT"
	SmartFolderScopeShared     SmartFolderScope = "SHARED"
)

// ParseSmartFolderScope maps free-form input to a scope, defaulting to
// PRIVATE for anything unrecognized.
func ParseSmartFolderScope(s string) SmartFolderScope {
	switch SmartFolderScope(s) {
	case SmartFolderScopeDepartment:
		return SmartFolderScopeDepartment
	case SmartFolderScopeShared:
		return SmartFolderScopeShared
	default:
		return SmartFolderScopePrivate
	}
}

// SmartFolder is a saved, rule-defined virtual view over the document
// corpus. Definition holds the opaque rule JSON; it is parsed fresh on
// every evaluation. UpdatedAt doubles as the cache version stamp.
type SmartFolder struct {
	Id          uuid.UUID
	Name        string
	Description string
	Definition  string
	Scope       SmartFolderScope
	OwnerId     uuid.UUID
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
