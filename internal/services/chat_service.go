package services

import (
	"context"
	"strings"
	"time"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	chatMaxTokens   = 1000
	chatTemperature = 0.7
)

// ChatService orchestrates a chat turn: session lookup/creation, prompt
// composition from the windowed history, the completion call, and folding the
// exchange back into the session store.
type ChatService struct {
	ai      CompletionClient
	store   *SessionStore
	prompts *PromptBuilder
	log     zerolog.Logger
}

func NewChatService(ai CompletionClient, store *SessionStore, prompts *PromptBuilder, log zerolog.Logger) *ChatService {
	return &ChatService{ai: ai, store: store, prompts: prompts, log: log}
}

type AskRequest struct {
	Message   string
	SessionID string
	Language  string
	Subject   string
}

type AskResult struct {
	SessionID string
	Message   models.ChatMessage
}

func (s *ChatService) Ask(ctx context.Context, userID uuid.UUID, req AskRequest) (*AskResult, error) {
	// Rejected input must leave no trace: validate before any session row
	// can be created.
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("Please provide a message")
	}

	language := req.Language
	if language == "" {
		language = "English"
	}

	session, err := s.store.GetOrCreate(userID, req.SessionID, req.Message, language, req.Subject)
	if err != nil {
		return nil, err
	}

	messages, err := s.prompts.Build(BuildInput{
		Feature:  FeatureChat,
		Input:    req.Message,
		Language: language,
		History:  s.store.Window(session),
		Subject:  session.Subject,
	})
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.Complete(ctx, messages, chatMaxTokens, chatTemperature)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userTurn := models.ChatMessage{Role: models.RoleUser, Content: req.Message, Language: language, Timestamp: now}
	assistantTurn := models.ChatMessage{Role: models.RoleAssistant, Content: answer, Language: language, Timestamp: time.Now()}

	if _, err := s.store.AppendExchange(userID, session.SessionID, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	return &AskResult{SessionID: session.SessionID, Message: assistantTurn}, nil
}

// CreateSession explicitly opens an empty conversation.
func (s *ChatService) CreateSession(userID uuid.UUID, language, subject string) (*models.ChatSession, error) {
	return s.store.GetOrCreate(userID, "", "", language, subject)
}

// History lists the caller's sessions, newest activity first.
func (s *ChatService) History(userID uuid.UUID, page, limit int) ([]models.ChatSession, int64, error) {
	return s.store.repo.ListByUser(userID, page, limit)
}

// Session returns one session with its full stored history.
func (s *ChatService) Session(userID uuid.UUID, sessionID string) (*models.ChatSession, error) {
	return s.store.Get(userID, sessionID)
}

func (s *ChatService) DeleteSession(userID uuid.UUID, sessionID string) error {
	return s.store.Delete(userID, sessionID)
}

func (s *ChatService) ClearHistory(userID uuid.UUID) error {
	return s.store.DeleteAll(userID)
}
