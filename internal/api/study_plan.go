package api

import (
	"net/http"
	"time"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type createStudySessionRequest struct {
	Subject  string    `json:"subject" binding:"required"`
	Topic    string    `json:"topic" binding:"required"`
	Duration int       `json:"duration" binding:"required,min=5,max=480"`
	Deadline time.Time `json:"deadline" binding:"required,futuredate"`
	Priority string    `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Notes    string    `json:"notes"`
}

func createStudySessionHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req createStudySessionRequest
		if !bindJSON(c, &req) {
			return
		}

		session, err := studyPlanService.Create(user.ID, services.CreateStudySessionRequest{
			Subject:  req.Subject,
			Topic:    req.Topic,
			Duration: req.Duration,
			Deadline: req.Deadline,
			Priority: req.Priority,
			Notes:    req.Notes,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, session)
	}
}

func listStudySessionsHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		page, limit := pageParams(c)
		sessions, total, err := studyPlanService.List(user.ID, services.StudyFilter{
			Status:   c.Query("status"),
			Priority: c.Query("priority"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondPage(c, sessions, page, limit, total)
	}
}

func todayStudySessionsHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		sessions, err := studyPlanService.Today(user.ID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, sessions)
	}
}

func upcomingStudySessionsHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		sessions, err := studyPlanService.Upcoming(user.ID)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, sessions)
	}
}

func getStudySessionHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		session, err := studyPlanService.Get(user.ID, id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, session)
	}
}

type updateStudySessionRequest struct {
	Subject  *string    `json:"subject"`
	Topic    *string    `json:"topic"`
	Duration *int       `json:"duration" binding:"omitempty,min=5,max=480"`
	Deadline *time.Time `json:"deadline"`
	Priority *string    `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status   *string    `json:"status" binding:"omitempty,oneof=pending in-progress completed missed"`
	Notes    *string    `json:"notes"`
}

func updateStudySessionHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req updateStudySessionRequest
		if !bindJSON(c, &req) {
			return
		}

		session, err := studyPlanService.Update(user.ID, id, services.UpdateStudySessionRequest{
			Subject:  req.Subject,
			Topic:    req.Topic,
			Duration: req.Duration,
			Deadline: req.Deadline,
			Priority: req.Priority,
			Status:   req.Status,
			Notes:    req.Notes,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, session)
	}
}

func deleteStudySessionHandler(studyPlanService *services.StudyPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := studyPlanService.Delete(user.ID, id); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"message": "Study session deleted"})
	}
}
