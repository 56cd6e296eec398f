package api

import (
	"fmt"
	"net/http"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type createExamPlanRequest struct {
	ExamName string   `json:"examName" binding:"required"`
	Subject  string   `json:"subject" binding:"required"`
	ExamDate string   `json:"examDate" binding:"required"`
	Topics   []string `json:"topics" binding:"required,min=1"`
	Syllabus string   `json:"syllabus"`
}

func createExamPlanHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req createExamPlanRequest
		if !bindJSON(c, &req) {
			return
		}

		examDate, err := parseDate(req.ExamDate)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("examDate must be a valid date"))
			return
		}

		plan, err := examPrepService.Create(c.Request.Context(), user.ID, services.CreateExamPlanRequest{
			ExamName: req.ExamName,
			Subject:  req.Subject,
			ExamDate: examDate,
			Topics:   req.Topics,
			Syllabus: req.Syllabus,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, plan)
	}
}

type createTimetableRequest struct {
	Subjects    []string `json:"subjects" binding:"required,min=1"`
	ExamDate    string   `json:"examDate" binding:"required"`
	HoursPerDay float64  `json:"hoursPerDay" binding:"required"`
}

func createTimetableHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req createTimetableRequest
		if !bindJSON(c, &req) {
			return
		}

		examDate, err := parseDate(req.ExamDate)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("examDate must be a valid date"))
			return
		}

		plan, err := examPrepService.CreateTimetable(user.ID, services.TimetableRequest{
			Subjects:    req.Subjects,
			ExamDate:    examDate,
			HoursPerDay: req.HoursPerDay,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, plan)
	}
}

func listExamPlansHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		page, limit := pageParams(c)
		plans, total, err := examPrepService.List(user.ID, services.ExamFilter{
			Status: c.Query("status"),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondPage(c, plans, page, limit, total)
	}
}

func getExamPlanHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		plan, err := examPrepService.Get(user.ID, id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		completed := 0
		for _, task := range plan.StudyTasks {
			if task.Completed {
				completed++
			}
		}
		respond(c, http.StatusOK, gin.H{
			"plan":           plan,
			"progress":       plan.Progress,
			"completedTasks": completed,
			"totalTasks":     len(plan.StudyTasks),
		})
	}
}

type updateExamPlanRequest struct {
	ExamName *string `json:"examName"`
	Subject  *string `json:"subject"`
	Syllabus *string `json:"syllabus"`
	Status   *string `json:"status" binding:"omitempty,oneof=active completed paused"`
}

func updateExamPlanHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req updateExamPlanRequest
		if !bindJSON(c, &req) {
			return
		}

		plan, err := examPrepService.Update(user.ID, id, services.UpdateExamPlanRequest{
			ExamName: req.ExamName,
			Subject:  req.Subject,
			Syllabus: req.Syllabus,
			Status:   req.Status,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, plan)
	}
}

type updateExamTaskRequest struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes"`
}

func updateExamTaskHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req updateExamTaskRequest
		if !bindJSON(c, &req) {
			return
		}

		plan, err := examPrepService.UpdateTask(user.ID, id, c.Param("taskID"), services.UpdateTaskRequest{
			Completed: req.Completed,
			Notes:     req.Notes,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, plan)
	}
}

func exportExamPlanHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		plan, err := examPrepService.Get(user.ID, id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		pdfBytes, err := services.RenderTimetablePDF(plan)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("exam-plan-%d.pdf", plan.ID)))
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}

func deleteExamPlanHandler(examPrepService *services.ExamPrepService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := examPrepService.Delete(user.ID, id); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"message": "Exam plan deleted"})
	}
}
