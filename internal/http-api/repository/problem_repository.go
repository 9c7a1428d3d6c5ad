package repository

import (
	"context"

	"mathspring/internal/http-api/models"

	"gorm.io/gorm"
)

// ProblemRepository is read-only, problems are authored elsewhere
type ProblemRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Problem, error)
}

type problemRepository struct {
	db *gorm.DB
}

func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) FindByID(ctx context.Context, id uint) (*models.Problem, error) {
	var problem models.Problem
	if err := r.db.WithContext(ctx).First(&problem, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &problem, nil
}
