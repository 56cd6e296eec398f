package services

import (
	"time"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultStudyRepository struct {
	db *gorm.DB
}

func NewStudyRepository(db *gorm.DB) StudyRepository {
	return &DefaultStudyRepository{db: db}
}

func (r *DefaultStudyRepository) Create(session *models.StudySession) error {
	if err := r.db.Create(session).Error; err != nil {
		return apperrors.FromPersistence(err, "Study session not found")
	}
	return nil
}

// List sorts by deadline ascending, then priority descending (High before Low;
// the priority labels happen to sort correctly descending lexicographically
// only for High/Low, so a CASE expression pins the order).
func (r *DefaultStudyRepository) List(userID uuid.UUID, filter StudyFilter) ([]models.StudySession, int64, error) {
	query := r.db.Model(&models.StudySession{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromPersistence(err, "Study session not found")
	}

	var sessions []models.StudySession
	result := query.
		Order("deadline ASC").
		Order(priorityOrder).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&sessions)
	if result.Error != nil {
		return nil, 0, apperrors.FromPersistence(result.Error, "Study session not found")
	}
	return sessions, total, nil
}

const priorityOrder = "CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END"

// Today returns sessions whose deadline falls within the current day,
// highest priority first.
func (r *DefaultStudyRepository) Today(userID uuid.UUID) ([]models.StudySession, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var sessions []models.StudySession
	result := r.db.Where("user_id = ? AND deadline >= ? AND deadline < ?", userID, dayStart, dayEnd).
		Order(priorityOrder).
		Find(&sessions)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Study session not found")
	}
	return sessions, nil
}

// Upcoming returns not-yet-completed sessions due within the next seven days.
func (r *DefaultStudyRepository) Upcoming(userID uuid.UUID) ([]models.StudySession, error) {
	now := time.Now()
	nextWeek := now.AddDate(0, 0, 7)

	var sessions []models.StudySession
	result := r.db.Where("user_id = ? AND deadline >= ? AND deadline <= ? AND status <> ?",
		userID, now, nextWeek, models.StatusCompleted).
		Order("deadline ASC").
		Order(priorityOrder).
		Find(&sessions)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Study session not found")
	}
	return sessions, nil
}

func (r *DefaultStudyRepository) Get(userID uuid.UUID, id uint) (*models.StudySession, error) {
	var session models.StudySession
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Study session not found")
	}
	return &session, nil
}

func (r *DefaultStudyRepository) Update(session *models.StudySession) error {
	if err := r.db.Save(session).Error; err != nil {
		return apperrors.FromPersistence(err, "Study session not found")
	}
	return nil
}

func (r *DefaultStudyRepository) SetSuggestion(userID uuid.UUID, id uint, suggestion string) error {
	result := r.db.Model(&models.StudySession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("ai_suggestion", suggestion)
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Study session not found")
	}
	return nil
}

func (r *DefaultStudyRepository) Delete(userID uuid.UUID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.StudySession{})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Study session not found")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Study session not found")
	}
	return nil
}
