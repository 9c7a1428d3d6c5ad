package service

import (
	"context"
	"errors"

	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/repository"
)

type ProblemService interface {
	GetProblem(ctx context.Context, id uint) (*models.Problem, error)
}

type problemService struct {
	problemRepo repository.ProblemRepository
}

func NewProblemService(problemRepo repository.ProblemRepository) ProblemService {
	return &problemService{problemRepo: problemRepo}
}

func (s *problemService) GetProblem(ctx context.Context, id uint) (*models.Problem, error) {
	problem, err := s.problemRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProblemNotFound
	}
	return problem, err
}
