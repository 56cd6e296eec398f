package services

import (
	"context"

	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient is the uniform interface to the external completion provider.
type CompletionClient interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int, temperature float32) (string, error)
}

// ChatRepository persists chat sessions, always scoped by owner.
type ChatRepository interface {
	GetOrCreate(userID uuid.UUID, sessionID, title, language, subject string) (*models.ChatSession, error)
	GetBySessionID(userID uuid.UUID, sessionID string) (*models.ChatSession, error)
	SaveMessages(userID uuid.UUID, sessionID string, messages []models.ChatMessage, title string) error
	ListByUser(userID uuid.UUID, page, limit int) ([]models.ChatSession, int64, error)
	Delete(userID uuid.UUID, sessionID string) error
	DeleteAll(userID uuid.UUID) error
}

// StudyFilter narrows study-session listings.
type StudyFilter struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}

type StudyRepository interface {
	Create(session *models.StudySession) error
	List(userID uuid.UUID, filter StudyFilter) ([]models.StudySession, int64, error)
	Today(userID uuid.UUID) ([]models.StudySession, error)
	Upcoming(userID uuid.UUID) ([]models.StudySession, error)
	Get(userID uuid.UUID, id uint) (*models.StudySession, error)
	Update(session *models.StudySession) error
	SetSuggestion(userID uuid.UUID, id uint, suggestion string) error
	Delete(userID uuid.UUID, id uint) error
}

// ExamFilter narrows exam-plan listings.
type ExamFilter struct {
	Status string
	Page   int
	Limit  int
}

type ExamRepository interface {
	Create(plan *models.ExamPlan) error
	List(userID uuid.UUID, filter ExamFilter) ([]models.ExamPlan, int64, error)
	Get(userID uuid.UUID, id uint) (*models.ExamPlan, error)
	Update(plan *models.ExamPlan) error
	Delete(userID uuid.UUID, id uint) error
}

// SummaryFilter narrows summary listings.
type SummaryFilter struct {
	Subject    string
	SourceType string
	Page       int
	Limit      int
}

type SummaryRepository interface {
	Create(summary *models.Summary) error
	List(userID uuid.UUID, filter SummaryFilter) ([]models.Summary, int64, error)
	Get(userID uuid.UUID, id uint) (*models.Summary, error)
	Delete(userID uuid.UUID, id uint) error
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(path string) (text string, pages int, err error)
}

// TaskRunner executes work decoupled from the request cycle. Failures are
// reported through the standard error taxonomy, never swallowed.
type TaskRunner interface {
	Go(name string, fn func(ctx context.Context) error)
}
