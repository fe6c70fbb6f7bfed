package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil means broadcast to everyone
	Type      string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
