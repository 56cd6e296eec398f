package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusMissed     = "missed"
)

// StudySession is a single planned study slot. CompletedAt is set exactly once,
// when the status transitions into completed.
type StudySession struct {
	gorm.Model
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_study_user_deadline"`
	Subject      string    `gorm:"not null"`
	Topic        string    `gorm:"not null"`
	Duration     int       `gorm:"not null"` // minutes, 5..480
	Deadline     time.Time `gorm:"not null;index:idx_study_user_deadline"`
	Priority     string    `gorm:"default:'Medium'"`
	Status       string    `gorm:"default:'pending';index"`
	Notes        string
	CompletedAt  *time.Time
	AISuggestion string
}
