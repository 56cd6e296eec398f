package services

import (
	"context"
	"time"

	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	studyPlanMaxTokens   = 1200
	studyPlanTemperature = 0.7
)

// StudyPlanService manages individual study sessions. AI suggestions are
// generated off the request cycle through the task runner; a failed
// enrichment is logged and the session stays without a suggestion.
type StudyPlanService struct {
	ai       CompletionClient
	prompts  *PromptBuilder
	sessions StudyRepository
	tasks    TaskRunner
	log      zerolog.Logger
}

func NewStudyPlanService(ai CompletionClient, prompts *PromptBuilder, sessions StudyRepository, tasks TaskRunner, log zerolog.Logger) *StudyPlanService {
	return &StudyPlanService{ai: ai, prompts: prompts, sessions: sessions, tasks: tasks, log: log}
}

type CreateStudySessionRequest struct {
	Subject  string
	Topic    string
	Duration int
	Deadline time.Time
	Priority string
	Notes    string
}

func (s *StudyPlanService) Create(userID uuid.UUID, req CreateStudySessionRequest) (*models.StudySession, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	session := &models.StudySession{
		UserID:   userID,
		Subject:  req.Subject,
		Topic:    req.Topic,
		Duration: req.Duration,
		Deadline: req.Deadline,
		Priority: priority,
		Status:   models.StatusPending,
		Notes:    req.Notes,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	s.enrichWithSuggestion(userID, session)
	return session, nil
}

// enrichWithSuggestion requests an AI study suggestion in the background.
func (s *StudyPlanService) enrichWithSuggestion(userID uuid.UUID, session *models.StudySession) {
	subject, topic := session.Subject, session.Topic
	duration := session.Duration
	deadline := session.Deadline.Format("2006-01-02")
	priority := session.Priority
	sessionID := session.ID

	s.tasks.Go("study-plan-suggestion", func(ctx context.Context) error {
		messages, err := s.prompts.Build(BuildInput{
			Feature: FeatureStudyPlan,
			Input:   StudyPlanUserPrompt(subject, topic, duration, deadline, priority),
		})
		if err != nil {
			return err
		}

		plan, err := s.ai.Complete(ctx, messages, studyPlanMaxTokens, studyPlanTemperature)
		if err != nil {
			return err
		}

		return s.sessions.SetSuggestion(userID, sessionID, plan)
	})
}

func (s *StudyPlanService) List(userID uuid.UUID, filter StudyFilter) ([]models.StudySession, int64, error) {
	return s.sessions.List(userID, filter)
}

func (s *StudyPlanService) Today(userID uuid.UUID) ([]models.StudySession, error) {
	return s.sessions.Today(userID)
}

func (s *StudyPlanService) Upcoming(userID uuid.UUID) ([]models.StudySession, error) {
	return s.sessions.Upcoming(userID)
}

func (s *StudyPlanService) Get(userID uuid.UUID, id uint) (*models.StudySession, error) {
	return s.sessions.Get(userID, id)
}

type UpdateStudySessionRequest struct {
	Subject  *string
	Topic    *string
	Duration *int
	Deadline *time.Time
	Priority *string
	Status   *string
	Notes    *string
}

// Update applies a partial update. CompletedAt is set exactly once, at the
// transition into completed, and is never cleared or overwritten afterwards.
func (s *StudyPlanService) Update(userID uuid.UUID, id uint, req UpdateStudySessionRequest) (*models.StudySession, error) {
	session, err := s.sessions.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		session.Subject = *req.Subject
	}
	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Deadline != nil {
		session.Deadline = *req.Deadline
	}
	if req.Priority != nil {
		session.Priority = *req.Priority
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}
	if req.Status != nil {
		if *req.Status == models.StatusCompleted && session.Status != models.StatusCompleted {
			now := time.Now()
			session.CompletedAt = &now
		}
		session.Status = *req.Status
	}

	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudyPlanService) Delete(userID uuid.UUID, id uint) error {
	return s.sessions.Delete(userID, id)
}
