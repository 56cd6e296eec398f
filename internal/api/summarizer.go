package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type summarizeTextRequest struct {
	Text    string `json:"text"`
	Title   string `json:"title"`
	Subject string `json:"subject"`
	Style   string `json:"style" binding:"omitempty,oneof=bullet paragraph outline"`
	Length  string `json:"length" binding:"omitempty,oneof=short medium long"`
}

func summarizeTextHandler(summarizerService *services.SummarizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req summarizeTextRequest
		if !bindJSON(c, &req) {
			return
		}

		summary, err := summarizerService.SummarizeText(c.Request.Context(), user.ID, services.SummarizeRequest{
			Text:    req.Text,
			Title:   req.Title,
			Subject: req.Subject,
			Style:   req.Style,
			Length:  req.Length,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, summary)
	}
}

func summarizePDFHandler(summarizerService *services.SummarizerService, maxUploadBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			apperrors.HandleError(c, apperrors.NewValidationError("Please upload a file"))
			return
		}
		if file.Size > maxUploadBytes {
			apperrors.HandleError(c, apperrors.NewValidationError(
				fmt.Sprintf("File size must not exceed %dMB", maxUploadBytes/(1<<20))))
			return
		}

		tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tempPath); err != nil {
			apperrors.HandleError(c, apperrors.NewInternalError(err))
			return
		}
		defer func() {
			if err := os.Remove(tempPath); err != nil {
				log.Warn().Err(err).Str("path", tempPath).Msg("failed to remove uploaded file")
			}
		}()

		req := services.SummarizeRequest{
			Title:   c.PostForm("title"),
			Subject: c.PostForm("subject"),
			Style:   c.PostForm("style"),
			Length:  c.PostForm("length"),
		}

		summary, pages, err := summarizerService.SummarizePDF(c.Request.Context(), user.ID, tempPath, file.Filename, req)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusCreated, gin.H{"summary": summary, "pageCount": pages})
	}
}

func listSummariesHandler(summarizerService *services.SummarizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		page, limit := pageParams(c)
		summaries, total, err := summarizerService.List(user.ID, services.SummaryFilter{
			Subject:    c.Query("subject"),
			SourceType: c.Query("sourceType"),
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondPage(c, summaries, page, limit, total)
	}
}

func getSummaryHandler(summarizerService *services.SummarizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		summary, err := summarizerService.Get(user.ID, id)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, summary)
	}
}

func deleteSummaryHandler(summarizerService *services.SummarizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := summarizerService.Delete(user.ID, id); err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"message": "Summary deleted"})
	}
}
