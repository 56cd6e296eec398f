package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceTypeText = "text"
	SourceTypePDF  = "pdf"
)

// Summary stores a summarization result. CompressionRatio is computed at
// creation and never recomputed.
type Summary struct {
	gorm.Model
	UserID            uuid.UUID `gorm:"type:uuid;index:idx_summary_user_created"`
	Title             string    `gorm:"not null"`
	OriginalText      string    `gorm:"not null"`
	SummarizedText    string    `gorm:"not null"`
	KeyPoints         datatypes.JSONSlice[string]
	SourceType        string `gorm:"not null"` // text|pdf
	OriginalFileName  string
	WordCountOriginal int
	WordCountSummary  int
	CompressionRatio  int // round(100 * (1 - summaryWords/originalWords))
	Subject           string
}
