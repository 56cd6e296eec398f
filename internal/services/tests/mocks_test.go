package services_test

import (
	"context"
	"sync"

	"learnai_go_backend/internal/models"
	"learnai_go_backend/internal/services"

	apperrors "learnai_go_backend/internal/errors"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"
)

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int, temperature float32) (string, error) {
	args := m.Called(ctx, messages, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

type MockStudyRepository struct {
	mock.Mock
}

func (m *MockStudyRepository) Create(session *models.StudySession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockStudyRepository) List(userID uuid.UUID, filter services.StudyFilter) ([]models.StudySession, int64, error) {
	args := m.Called(userID, filter)
	return args.Get(0).([]models.StudySession), args.Get(1).(int64), args.Error(2)
}

func (m *MockStudyRepository) Today(userID uuid.UUID) ([]models.StudySession, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.StudySession), args.Error(1)
}

func (m *MockStudyRepository) Upcoming(userID uuid.UUID) ([]models.StudySession, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.StudySession), args.Error(1)
}

func (m *MockStudyRepository) Get(userID uuid.UUID, id uint) (*models.StudySession, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockStudyRepository) Update(session *models.StudySession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockStudyRepository) SetSuggestion(userID uuid.UUID, id uint, suggestion string) error {
	args := m.Called(userID, id, suggestion)
	return args.Error(0)
}

func (m *MockStudyRepository) Delete(userID uuid.UUID, id uint) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(plan *models.ExamPlan) error {
	args := m.Called(plan)
	return args.Error(0)
}

func (m *MockExamRepository) List(userID uuid.UUID, filter services.ExamFilter) ([]models.ExamPlan, int64, error) {
	args := m.Called(userID, filter)
	return args.Get(0).([]models.ExamPlan), args.Get(1).(int64), args.Error(2)
}

func (m *MockExamRepository) Get(userID uuid.UUID, id uint) (*models.ExamPlan, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamPlan), args.Error(1)
}

func (m *MockExamRepository) Update(plan *models.ExamPlan) error {
	args := m.Called(plan)
	return args.Error(0)
}

func (m *MockExamRepository) Delete(userID uuid.UUID, id uint) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Create(summary *models.Summary) error {
	args := m.Called(summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) List(userID uuid.UUID, filter services.SummaryFilter) ([]models.Summary, int64, error) {
	args := m.Called(userID, filter)
	return args.Get(0).([]models.Summary), args.Get(1).(int64), args.Error(2)
}

func (m *MockSummaryRepository) Get(userID uuid.UUID, id uint) (*models.Summary, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Summary), args.Error(1)
}

func (m *MockSummaryRepository) Delete(userID uuid.UUID, id uint) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(path string) (string, int, error) {
	args := m.Called(path)
	return args.String(0), args.Int(1), args.Error(2)
}

// syncTaskRunner executes tasks inline so tests can assert on their outcome.
type syncTaskRunner struct {
	mu   sync.Mutex
	errs []error
}

func (r *syncTaskRunner) Go(name string, fn func(ctx context.Context) error) {
	err := fn(context.Background())
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// memoryChatRepository is a stateful in-memory stand-in used where tests need
// real read-modify-write behavior rather than canned expectations.
type memoryChatRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.ChatSession
	nextID   uint
}

func newMemoryChatRepository() *memoryChatRepository {
	return &memoryChatRepository{sessions: make(map[string]*models.ChatSession)}
}

func (r *memoryChatRepository) key(userID uuid.UUID, sessionID string) string {
	return userID.String() + ":" + sessionID
}

func (r *memoryChatRepository) GetOrCreate(userID uuid.UUID, sessionID, title, language, subject string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[r.key(userID, sessionID)]; ok {
		return copySession(existing), nil
	}

	// Session ids are globally unique; an id held by another user reads as
	// missing, never as a duplicate.
	for _, session := range r.sessions {
		if session.SessionID == sessionID {
			return nil, apperrors.NewNotFoundError("Chat session not found")
		}
	}

	r.nextID++
	session := &models.ChatSession{
		UserID:    userID,
		SessionID: sessionID,
		Title:     title,
		Language:  language,
		Subject:   subject,
	}
	session.ID = r.nextID
	r.sessions[r.key(userID, sessionID)] = session
	return copySession(session), nil
}

func (r *memoryChatRepository) GetBySessionID(userID uuid.UUID, sessionID string) (*models.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[r.key(userID, sessionID)]
	if !ok {
		return nil, apperrors.NewNotFoundError("Conversation not found")
	}
	return copySession(session), nil
}

func (r *memoryChatRepository) SaveMessages(userID uuid.UUID, sessionID string, messages []models.ChatMessage, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[r.key(userID, sessionID)]
	if !ok {
		return apperrors.NewNotFoundError("Conversation not found")
	}
	session.Messages = append([]models.ChatMessage(nil), messages...)
	session.Title = title
	return nil
}

func (r *memoryChatRepository) ListByUser(userID uuid.UUID, page, limit int) ([]models.ChatSession, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.ChatSession
	for _, session := range r.sessions {
		if session.UserID == userID {
			out = append(out, *copySession(session))
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryChatRepository) Delete(userID uuid.UUID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[r.key(userID, sessionID)]; !ok {
		return apperrors.NewNotFoundError("Conversation not found")
	}
	delete(r.sessions, r.key(userID, sessionID))
	return nil
}

func (r *memoryChatRepository) DeleteAll(userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, key)
		}
	}
	return nil
}

func copySession(s *models.ChatSession) *models.ChatSession {
	dup := *s
	dup.Messages = append([]models.ChatMessage(nil), s.Messages...)
	return &dup
}
