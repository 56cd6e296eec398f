package services

import (
	"context"
	"math"
	"time"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const (
	examPlanMaxTokens   = 1500
	examPlanTemperature = 0.7
)

// ExamPrepService builds dated preparation plans. The AI's schedule is parsed
// into structured tasks when possible; otherwise the plan text is stored
// verbatim with zero tasks.
type ExamPrepService struct {
	ai      CompletionClient
	prompts *PromptBuilder
	plans   ExamRepository
	log     zerolog.Logger
}

func NewExamPrepService(ai CompletionClient, prompts *PromptBuilder, plans ExamRepository, log zerolog.Logger) *ExamPrepService {
	return &ExamPrepService{ai: ai, prompts: prompts, plans: plans, log: log}
}

type CreateExamPlanRequest struct {
	ExamName string
	Subject  string
	ExamDate time.Time
	Topics   []string
	Syllabus string
}

func (s *ExamPrepService) Create(ctx context.Context, userID uuid.UUID, req CreateExamPlanRequest) (*models.ExamPlan, error) {
	now := time.Now()
	daysUntilExam := DaysUntil(req.ExamDate, now)
	if daysUntilExam < 1 {
		return nil, apperrors.NewValidationError("Exam date must be in the future")
	}

	messages, err := s.prompts.Build(BuildInput{
		Feature: FeatureExamPlan,
		Input:   ExamPlanUserPrompt(req.ExamName, req.Subject, daysUntilExam, req.Topics),
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.ai.Complete(ctx, messages, examPlanMaxTokens, examPlanTemperature)
	if err != nil {
		return nil, err
	}

	outcome := ParsePlan(raw)
	tasks := DeriveTasks(outcome, now)

	overview := outcome.Freeform
	var tips []string
	if outcome.Structured != nil {
		overview = outcome.Structured.Overview
		tips = outcome.Structured.Tips
	}

	plan := &models.ExamPlan{
		UserID:       userID,
		ExamName:     req.ExamName,
		Subject:      req.Subject,
		ExamDate:     req.ExamDate,
		Topics:       datatypes.NewJSONSlice(req.Topics),
		Syllabus:     req.Syllabus,
		StudyTasks:   datatypes.NewJSONSlice(tasks),
		PlanOverview: overview,
		Tips:         datatypes.NewJSONSlice(tips),
		Status:       models.PlanStatusActive,
		Progress:     0,
	}
	if err := s.plans.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

type TimetableRequest struct {
	Subjects    []string
	ExamDate    time.Time
	HoursPerDay float64
}

// CreateTimetable derives a deterministic round-robin timetable without an
// upstream call: every subject gets an even share of each day until the exam.
func (s *ExamPrepService) CreateTimetable(userID uuid.UUID, req TimetableRequest) (*models.ExamPlan, error) {
	now := time.Now()
	daysUntilExam := DaysUntil(req.ExamDate, now)
	if daysUntilExam < 1 {
		return nil, apperrors.NewValidationError("Exam date must be in the future")
	}
	if len(req.Subjects) == 0 {
		return nil, apperrors.NewValidationError("Please provide at least one subject")
	}
	if req.HoursPerDay <= 0 || req.HoursPerDay > 16 {
		return nil, apperrors.NewValidationError("hoursPerDay must be between 0 and 16")
	}

	minutesPerSubject := int(math.Round(req.HoursPerDay * 60 / float64(len(req.Subjects))))
	day0 := dayStart(now)

	var tasks []models.StudyTask
	for day := 1; day <= daysUntilExam; day++ {
		date := day0.AddDate(0, 0, day-1)
		for _, subject := range req.Subjects {
			tasks = append(tasks, models.StudyTask{
				ID:       uuid.New().String(),
				Day:      day,
				Date:     date,
				Topic:    subject,
				Duration: minutesPerSubject,
				Priority: models.PriorityMedium,
			})
		}
	}

	plan := &models.ExamPlan{
		UserID:     userID,
		ExamName:   "Study Timetable",
		Subject:    req.Subjects[0],
		ExamDate:   req.ExamDate,
		Topics:     datatypes.NewJSONSlice(req.Subjects),
		StudyTasks: datatypes.NewJSONSlice(tasks),
		Status:     models.PlanStatusActive,
	}
	if err := s.plans.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *ExamPrepService) List(userID uuid.UUID, filter ExamFilter) ([]models.ExamPlan, int64, error) {
	return s.plans.List(userID, filter)
}

func (s *ExamPrepService) Get(userID uuid.UUID, id uint) (*models.ExamPlan, error) {
	return s.plans.Get(userID, id)
}

type UpdateExamPlanRequest struct {
	ExamName *string
	Subject  *string
	Syllabus *string
	Status   *string
}

func (s *ExamPrepService) Update(userID uuid.UUID, id uint, req UpdateExamPlanRequest) (*models.ExamPlan, error) {
	plan, err := s.plans.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if req.ExamName != nil {
		plan.ExamName = *req.ExamName
	}
	if req.Subject != nil {
		plan.Subject = *req.Subject
	}
	if req.Syllabus != nil {
		plan.Syllabus = *req.Syllabus
	}
	if req.Status != nil {
		plan.Status = *req.Status
	}

	if err := s.plans.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

type UpdateTaskRequest struct {
	Completed *bool
	Notes     *string
}

// UpdateTask toggles one task and recomputes the plan's progress.
func (s *ExamPrepService) UpdateTask(userID uuid.UUID, planID uint, taskID string, req UpdateTaskRequest) (*models.ExamPlan, error) {
	plan, err := s.plans.Get(userID, planID)
	if err != nil {
		return nil, err
	}

	tasks := []models.StudyTask(plan.StudyTasks)
	found := false
	for i := range tasks {
		if tasks[i].ID == taskID {
			if req.Completed != nil {
				tasks[i].Completed = *req.Completed
			}
			if req.Notes != nil {
				tasks[i].Notes = *req.Notes
			}
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NewNotFoundError("Task not found")
	}

	plan.StudyTasks = datatypes.NewJSONSlice(tasks)
	plan.Progress = RecomputeProgress(tasks)

	if err := s.plans.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *ExamPrepService) Delete(userID uuid.UUID, id uint) error {
	return s.plans.Delete(userID, id)
}
