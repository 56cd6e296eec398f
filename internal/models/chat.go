package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single turn inside a session's message document.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession holds one conversation thread. Messages live in a JSON document
// column; the stored history is bounded by the session store's sliding window.
type ChatSession struct {
	gorm.Model
	UserID    uuid.UUID                          `gorm:"type:uuid;index:idx_chat_user_updated"`
	SessionID string                             `gorm:"uniqueIndex;not null"`
	Title     string                             `gorm:"default:'New Conversation'"`
	Language  string                             `gorm:"default:'English'"`
	Subject   string
	Messages  datatypes.JSONSlice[ChatMessage]
}
