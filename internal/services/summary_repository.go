package services

import (
	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultSummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &DefaultSummaryRepository{db: db}
}

func (r *DefaultSummaryRepository) Create(summary *models.Summary) error {
	if err := r.db.Create(summary).Error; err != nil {
		return apperrors.FromPersistence(err, "Summary not found")
	}
	return nil
}

// List returns summaries newest first. The original text is omitted from
// listings; it can be large.
func (r *DefaultSummaryRepository) List(userID uuid.UUID, filter SummaryFilter) ([]models.Summary, int64, error) {
	query := r.db.Model(&models.Summary{}).Where("user_id = ?", userID)
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", filter.SourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromPersistence(err, "Summary not found")
	}

	var summaries []models.Summary
	result := query.
		Omit("original_text").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&summaries)
	if result.Error != nil {
		return nil, 0, apperrors.FromPersistence(result.Error, "Summary not found")
	}
	return summaries, total, nil
}

func (r *DefaultSummaryRepository) Get(userID uuid.UUID, id uint) (*models.Summary, error) {
	var summary models.Summary
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&summary)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Summary not found")
	}
	return &summary, nil
}

func (r *DefaultSummaryRepository) Delete(userID uuid.UUID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Summary{})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Summary not found")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Summary not found")
	}
	return nil
}
