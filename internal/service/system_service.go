package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

type CreateSystemRequest struct {
	SystemCode  string `json:"system_code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OwnerTeam   string `json:"owner_team"`
}

type SystemService interface {
	CreateSystem(ctx context.Context, req CreateSystemRequest) (*model.System, error)
	ListSystems(ctx context.Context) ([]model.System, error)
	GetSystem(ctx context.Context, systemCode string) (*model.System, error)
}

type systemService struct {
	systems repository.SystemRepository
}

func NewSystemService(systems repository.SystemRepository) SystemService {
	return &systemService{systems: systems}
}

func (s *systemService) CreateSystem(ctx context.Context, req CreateSystemRequest) (*model.System, error) {
	if _, err := s.systems.FindByCode(ctx, req.SystemCode); err == nil {
		return nil, apperror.Validation("system %s already exists", req.SystemCode)
	}
	system := &model.System{
		SystemCode:  req.SystemCode,
		Name:        req.Name,
		Description: req.Description,
		OwnerTeam:   req.OwnerTeam,
	}
	if err := s.systems.Create(ctx, system); err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to create system")
	}
	return system, nil
}

func (s *systemService) ListSystems(ctx context.Context) ([]model.System, error) {
	systems, err := s.systems.FindAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to list systems")
	}
	return systems, nil
}

func (s *systemService) GetSystem(ctx context.Context, systemCode string) (*model.System, error) {
	if systemCode == "" {
		return nil, apperror.Validation("system code is required")
	}
	system, err := s.systems.FindByCode(ctx, systemCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("system %s not found", systemCode)
		}
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to load system")
	}
	return system, nil
}
