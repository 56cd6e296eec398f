package services_test

import (
	"context"
	"testing"
	"time"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"
	"learnai_go_backend/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newExamPrepService(ai services.CompletionClient, repo services.ExamRepository) *services.ExamPrepService {
	return services.NewExamPrepService(ai, services.NewPromptBuilder(100), repo, zerolog.Nop())
}

func TestExamPrepCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Rejects a past exam date before calling the provider", func(t *testing.T) {
		// Setup
		mockAI := new(MockCompletionClient)
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(mockAI, mockRepo)

		// Execute
		_, err := examPrepService.Create(ctx, userID, services.CreateExamPlanRequest{
			ExamName: "Finals",
			Subject:  "Chemistry",
			ExamDate: time.Now().Add(-48 * time.Hour),
			Topics:   []string{"Stoichiometry"},
		})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, customErr.Type)
		assert.Equal(t, "Exam date must be in the future", customErr.Message)
		mockAI.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Derives dated tasks from a structured schedule", func(t *testing.T) {
		// Setup
		mockAI := new(MockCompletionClient)
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(mockAI, mockRepo)

		response := `{"overview": "Focus on weak areas first.",
			"dailySchedule": [
				{"day": 1, "topics": ["Stoichiometry", "Bonding"], "duration": 120, "priority": "High"},
				{"day": 2, "topics": ["Thermodynamics"], "duration": 90, "priority": "Medium"}
			],
			"tips": ["Do past papers"]}`

		// Expectations
		mockAI.On("Complete", mock.Anything, mock.Anything, 1500, float32(0.7)).
			Return(response, nil).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.ExamPlan")).Return(nil).Once()

		// Execute
		plan, err := examPrepService.Create(ctx, userID, services.CreateExamPlanRequest{
			ExamName: "Finals",
			Subject:  "Chemistry",
			ExamDate: time.Now().Add(7 * 24 * time.Hour),
			Topics:   []string{"Stoichiometry", "Bonding", "Thermodynamics"},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Focus on weak areas first.", plan.PlanOverview)
		assert.Equal(t, []string{"Do past papers"}, []string(plan.Tips))
		assert.Equal(t, models.PlanStatusActive, plan.Status)
		assert.Zero(t, plan.Progress)

		tasks := []models.StudyTask(plan.StudyTasks)
		require.Len(t, tasks, 3)
		assert.Equal(t, 60, tasks[0].Duration)
		assert.Equal(t, 60, tasks[1].Duration)
		assert.Equal(t, 90, tasks[2].Duration)
		assert.Equal(t, 2, tasks[2].Day)

		mockAI.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Keeps an unparseable response as the plan overview", func(t *testing.T) {
		// Setup
		mockAI := new(MockCompletionClient)
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(mockAI, mockRepo)

		freeform := "Day 1: revise everything. Day 2: rest."

		// Expectations
		mockAI.On("Complete", mock.Anything, mock.Anything, 1500, float32(0.7)).
			Return(freeform, nil).Once()
		mockRepo.On("Create", mock.Anything).Return(nil).Once()

		// Execute
		plan, err := examPrepService.Create(ctx, userID, services.CreateExamPlanRequest{
			ExamName: "Quiz",
			Subject:  "History",
			ExamDate: time.Now().Add(48 * time.Hour),
			Topics:   []string{"WWII"},
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, freeform, plan.PlanOverview)
		assert.Empty(t, []models.StudyTask(plan.StudyTasks))
	})
}

func TestExamPrepCreateTimetable(t *testing.T) {
	userID := uuid.New()

	t.Run("Builds a deterministic round-robin schedule", func(t *testing.T) {
		// Setup
		mockAI := new(MockCompletionClient)
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(mockAI, mockRepo)

		// Expectations
		mockRepo.On("Create", mock.Anything).Return(nil).Once()

		// Execute
		plan, err := examPrepService.CreateTimetable(userID, services.TimetableRequest{
			Subjects:    []string{"Maths", "Physics"},
			ExamDate:    time.Now().Add(3 * 24 * time.Hour),
			HoursPerDay: 2,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Study Timetable", plan.ExamName)
		tasks := []models.StudyTask(plan.StudyTasks)
		require.Len(t, tasks, 6)
		for _, task := range tasks {
			assert.Equal(t, 60, task.Duration)
			assert.Equal(t, models.PriorityMedium, task.Priority)
		}
		mockAI.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects an out-of-range daily load", func(t *testing.T) {
		// Setup
		examPrepService := newExamPrepService(new(MockCompletionClient), new(MockExamRepository))

		// Execute
		_, err := examPrepService.CreateTimetable(userID, services.TimetableRequest{
			Subjects:    []string{"Maths"},
			ExamDate:    time.Now().Add(48 * time.Hour),
			HoursPerDay: 20,
		})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, customErr.Type)
	})
}

func TestExamPrepUpdateTask(t *testing.T) {
	userID := uuid.New()

	newPlan := func() *models.ExamPlan {
		plan := &models.ExamPlan{
			UserID:   userID,
			ExamName: "Finals",
			Subject:  "Chemistry",
			StudyTasks: datatypes.NewJSONSlice([]models.StudyTask{
				{ID: "task-1", Day: 1, Topic: "Stoichiometry", Duration: 60},
				{ID: "task-2", Day: 2, Topic: "Bonding", Duration: 60},
			}),
			Status: models.PlanStatusActive,
		}
		plan.ID = 5
		return plan
	}

	t.Run("Completing a task recomputes the progress", func(t *testing.T) {
		// Setup
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(new(MockCompletionClient), mockRepo)
		plan := newPlan()

		// Expectations
		mockRepo.On("Get", userID, uint(5)).Return(plan, nil).Once()
		mockRepo.On("Update", plan).Return(nil).Once()

		// Execute
		completed := true
		updated, err := examPrepService.UpdateTask(userID, 5, "task-1", services.UpdateTaskRequest{Completed: &completed})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 50, updated.Progress)
		tasks := []models.StudyTask(updated.StudyTasks)
		assert.True(t, tasks[0].Completed)
		assert.False(t, tasks[1].Completed)
	})

	t.Run("Unchecking a task drops the progress back", func(t *testing.T) {
		// Setup
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(new(MockCompletionClient), mockRepo)
		plan := newPlan()
		tasks := []models.StudyTask(plan.StudyTasks)
		tasks[0].Completed = true
		plan.StudyTasks = datatypes.NewJSONSlice(tasks)
		plan.Progress = 50

		// Expectations
		mockRepo.On("Get", userID, uint(5)).Return(plan, nil).Once()
		mockRepo.On("Update", plan).Return(nil).Once()

		// Execute
		completed := false
		updated, err := examPrepService.UpdateTask(userID, 5, "task-1", services.UpdateTaskRequest{Completed: &completed})

		// Assert
		require.NoError(t, err)
		assert.Zero(t, updated.Progress)
	})

	t.Run("An unknown task id is not found", func(t *testing.T) {
		// Setup
		mockRepo := new(MockExamRepository)
		examPrepService := newExamPrepService(new(MockCompletionClient), mockRepo)

		// Expectations
		mockRepo.On("Get", userID, uint(5)).Return(newPlan(), nil).Once()

		// Execute
		completed := true
		_, err := examPrepService.UpdateTask(userID, 5, "no-such-task", services.UpdateTaskRequest{Completed: &completed})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, customErr.Type)
		assert.Equal(t, "Task not found", customErr.Message)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}
