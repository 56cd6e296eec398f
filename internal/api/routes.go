package api

import (
	"learnai_go_backend/internal/auth"
	"learnai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, chatService *services.ChatService, summarizerService *services.SummarizerService, studyPlanService *services.StudyPlanService, examPrepService *services.ExamPrepService, userService *services.UserService, maxUploadBytes int64) {
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler)

		api.POST("/chat/ask", auth.AuthMiddleware(userService), askHandler(chatService))
		api.POST("/chat/session", auth.AuthMiddleware(userService), createChatSessionHandler(chatService))
		api.GET("/chat/history", auth.AuthMiddleware(userService), chatHistoryHandler(chatService))
		api.GET("/chat/session/:sessionId", auth.AuthMiddleware(userService), getChatSessionHandler(chatService))
		api.DELETE("/chat/session/:sessionId", auth.AuthMiddleware(userService), deleteChatSessionHandler(chatService))
		api.DELETE("/chat/history", auth.AuthMiddleware(userService), clearChatHistoryHandler(chatService))

		api.POST("/summarizer/text", auth.AuthMiddleware(userService), summarizeTextHandler(summarizerService))
		api.POST("/summarizer/pdf", auth.AuthMiddleware(userService), summarizePDFHandler(summarizerService, maxUploadBytes))
		api.GET("/summarizer", auth.AuthMiddleware(userService), listSummariesHandler(summarizerService))
		api.GET("/summarizer/:id", auth.AuthMiddleware(userService), getSummaryHandler(summarizerService))
		api.DELETE("/summarizer/:id", auth.AuthMiddleware(userService), deleteSummaryHandler(summarizerService))

		api.POST("/study-plan", auth.AuthMiddleware(userService), createStudySessionHandler(studyPlanService))
		api.GET("/study-plan", auth.AuthMiddleware(userService), listStudySessionsHandler(studyPlanService))
		api.GET("/study-plan/today", auth.AuthMiddleware(userService), todayStudySessionsHandler(studyPlanService))
		api.GET("/study-plan/upcoming", auth.AuthMiddleware(userService), upcomingStudySessionsHandler(studyPlanService))
		api.GET("/study-plan/:id", auth.AuthMiddleware(userService), getStudySessionHandler(studyPlanService))
		api.PUT("/study-plan/:id", auth.AuthMiddleware(userService), updateStudySessionHandler(studyPlanService))
		api.DELETE("/study-plan/:id", auth.AuthMiddleware(userService), deleteStudySessionHandler(studyPlanService))

		api.POST("/exam-prep", auth.AuthMiddleware(userService), createExamPlanHandler(examPrepService))
		api.POST("/exam-prep/timetable", auth.AuthMiddleware(userService), createTimetableHandler(examPrepService))
		api.GET("/exam-prep", auth.AuthMiddleware(userService), listExamPlansHandler(examPrepService))
		api.GET("/exam-prep/:id", auth.AuthMiddleware(userService), getExamPlanHandler(examPrepService))
		api.PUT("/exam-prep/:id", auth.AuthMiddleware(userService), updateExamPlanHandler(examPrepService))
		api.PATCH("/exam-prep/:id/tasks/:taskID", auth.AuthMiddleware(userService), updateExamTaskHandler(examPrepService))
		api.GET("/exam-prep/:id/export", auth.AuthMiddleware(userService), exportExamPlanHandler(examPrepService))
		api.DELETE("/exam-prep/:id", auth.AuthMiddleware(userService), deleteExamPlanHandler(examPrepService))
	}
}
