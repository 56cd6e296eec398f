package api

import (
	"net/http"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type askRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
	Subject   string `json:"subject"`
}

func askHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req askRequest
		if !bindJSON(c, &req) {
			return
		}

		result, err := chatService.Ask(c.Request.Context(), user.ID, services.AskRequest{
			Message:   req.Message,
			SessionID: req.SessionID,
			Language:  req.Language,
			Subject:   req.Subject,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{
			"sessionId": result.SessionID,
			"message":   result.Message.Content,
			"language":  result.Message.Language,
			"timestamp": result.Message.Timestamp,
		})
	}
}

type createChatSessionRequest struct {
	Language string `json:"language"`
	Subject  string `json:"subject"`
}

func createChatSessionHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req createChatSessionRequest
		if !bindJSON(c, &req) {
			return
		}

		session, err := chatService.CreateSession(user.ID, req.Language, req.Subject)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, session)
	}
}

func chatHistoryHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		page, limit := pageParams(c)
		sessions, total, err := chatService.History(user.ID, page, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		// Listings carry conversation metadata only, not the message bodies.
		items := make([]gin.H, 0, len(sessions))
		for _, s := range sessions {
			items = append(items, gin.H{
				"sessionId":    s.SessionID,
				"title":        s.Title,
				"language":     s.Language,
				"subject":      s.Subject,
				"messageCount": len(s.Messages),
				"createdAt":    s.CreatedAt,
				"updatedAt":    s.UpdatedAt,
			})
		}
		respondPage(c, items, page, limit, total)
	}
}

func getChatSessionHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		session, err := chatService.Session(user.ID, c.Param("sessionId"))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, session)
	}
}

func deleteChatSessionHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		if err := chatService.DeleteSession(user.ID, c.Param("sessionId")); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"message": "Conversation deleted"})
	}
}

func clearChatHistoryHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		if err := chatService.ClearHistory(user.ID); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"message": "Chat history cleared"})
	}
}
