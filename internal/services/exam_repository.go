package services

import (
	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultExamRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &DefaultExamRepository{db: db}
}

func (r *DefaultExamRepository) Create(plan *models.ExamPlan) error {
	if err := r.db.Create(plan).Error; err != nil {
		return apperrors.FromPersistence(err, "Exam plan not found")
	}
	return nil
}

// List sorts by exam date ascending — the nearest exam first.
func (r *DefaultExamRepository) List(userID uuid.UUID, filter ExamFilter) ([]models.ExamPlan, int64, error) {
	query := r.db.Model(&models.ExamPlan{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.FromPersistence(err, "Exam plan not found")
	}

	var plans []models.ExamPlan
	result := query.
		Order("exam_date ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&plans)
	if result.Error != nil {
		return nil, 0, apperrors.FromPersistence(result.Error, "Exam plan not found")
	}
	return plans, total, nil
}

func (r *DefaultExamRepository) Get(userID uuid.UUID, id uint) (*models.ExamPlan, error) {
	var plan models.ExamPlan
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&plan)
	if result.Error != nil {
		return nil, apperrors.FromPersistence(result.Error, "Exam plan not found")
	}
	return &plan, nil
}

func (r *DefaultExamRepository) Update(plan *models.ExamPlan) error {
	if err := r.db.Save(plan).Error; err != nil {
		return apperrors.FromPersistence(err, "Exam plan not found")
	}
	return nil
}

func (r *DefaultExamRepository) Delete(userID uuid.UUID, id uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ExamPlan{})
	if result.Error != nil {
		return apperrors.FromPersistence(result.Error, "Exam plan not found")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Exam plan not found")
	}
	return nil
}
