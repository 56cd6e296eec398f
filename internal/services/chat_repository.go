package services

import (
	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DefaultChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &DefaultChatRepository{db: db}
}

// GetOrCreate finds the caller's session or creates it in one statement. The
// unique index on session_id guarantees two concurrent calls with the same
// fresh id mint exactly one row.
func (r *DefaultChatRepository) GetOrCreate(userID uuid.UUID, sessionID, title, language, subject string) (*models.ChatSession, error) {
	if language == "" {
		language = "English"
	}
	session := models.ChatSession{
		UserID:    userID,
		SessionID: sessionID,
		Title:     title,
		Language:  language,
		Subject:   subject,
		Messages:  datatypes.NewJSONSlice([]models.ChatMessage{}),
	}
	result := r.db.Where(models.ChatSession{SessionID: sessionID, UserID: userID}).FirstOrCreate(&session)
	if result.Error != nil {
		// A duplicate key here means the id belongs to another user's
		// session. Report it like any other missing session; a duplicate
		// error would reveal that the foreign session exists.
		if apperrors.IsDuplicateKey(result.Error) {
			return nil, apperrors.NewNotFoundError("Chat session not found")
		}
		return nil, apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	return &session, nil
}

func (r *DefaultChatRepository) GetBySessionID(userID uuid.UUID, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	result := r.db.Where("session_id = ? AND user_id = ?", sessionID, userID).First(&session)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	return &session, nil
}

func (r *DefaultChatRepository) SaveMessages(userID uuid.UUID, sessionID string, messages []models.ChatMessage, title string) error {
	result := r.db.Model(&models.ChatSession{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Updates(map[string]interface{}{
			"messages": datatypes.NewJSONSlice(messages),
			"title":    title,
		})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Chat session not found")
	}
	return nil
}

// ListByUser returns sessions by recency, newest first.
func (r *DefaultChatRepository) ListByUser(userID uuid.UUID, page, limit int) ([]models.ChatSession, int64, error) {
	var sessions []models.ChatSession
	var total int64

	if err := r.db.Model(&models.ChatSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromPersistence(err, "Chat session not found")
	}

	result := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sessions)
	if result.Error != nil {
		return nil, 0, apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	return sessions, total, nil
}

func (r *DefaultChatRepository) Delete(userID uuid.UUID, sessionID string) error {
	result := r.db.Where("session_id = ? AND user_id = ?", sessionID, userID).Delete(&models.ChatSession{})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Chat session not found")
	}
	return nil
}

func (r *DefaultChatRepository) DeleteAll(userID uuid.UUID) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.ChatSession{})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Chat session not found")
	}
	return nil
}
