package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusPaused    = "paused"
)

// StudyTask is one dated entry of an exam plan's day-by-day schedule.
type StudyTask struct {
	ID        string    `json:"id"`
	Day       int       `json:"day"` // 1-based offset from plan creation
	Date      time.Time `json:"date"`
	Topic     string    `json:"topic"`
	Duration  int       `json:"duration"` // minutes
	Priority  string    `json:"priority"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
}

// ExamPlan is a dated preparation plan with derived tasks and an overall
// progress percentage recomputed after every task mutation.
type ExamPlan struct {
	gorm.Model
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_exam_user_date"`
	ExamName     string    `gorm:"not null"`
	Subject      string    `gorm:"not null"`
	ExamDate     time.Time `gorm:"not null;index:idx_exam_user_date"`
	Topics       datatypes.JSONSlice[string]
	Syllabus     string
	StudyTasks   datatypes.JSONSlice[StudyTask]
	PlanOverview string // raw AI plan text when no structured schedule was produced
	Tips         datatypes.JSONSlice[string]
	Status       string `gorm:"default:'active';index"`
	Progress     int    `gorm:"default:0"` // 0..100
}
