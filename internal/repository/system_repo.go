package repository

import (
	"context"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"

	"gorm.io/gorm"
)

type SystemRepository interface {
	Create(ctx context.Context, system *model.System) error
	FindAll(ctx context.Context) ([]model.System, error)
	FindByCode(ctx context.Context, systemCode string) (*model.System, error)
}

type systemRepository struct {
	db *gorm.DB
}

func NewSystemRepository(db *gorm.DB) SystemRepository {
	return &systemRepository{db: db}
}

func (r *systemRepository) Create(ctx context.Context, system *model.System) error {
	return GetDB(ctx, r.db).Create(system).Error
}

func (r *systemRepository) FindAll(ctx context.Context) ([]model.System, error) {
	var systems []model.System
	if err := GetDB(ctx, r.db).Order("system_code ASC").Find(&systems).Error; err != nil {
		return nil, err
	}
	return systems, nil
}

func (r *systemRepository) FindByCode(ctx context.Context, systemCode string) (*model.System, error) {
	var system model.System
	if err := GetDB(ctx, r.db).First(&system, "system_code = ?", systemCode).Error; err != nil {
		return nil, err
	}
	return &system, nil
}
