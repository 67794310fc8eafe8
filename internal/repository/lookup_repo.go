package repository

import (
	"context"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"

	"gorm.io/gorm"
)

type LookupRepository interface {
	CapabilityTaxonomy(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error)
	TechCatalog(ctx context.Context) ([]model.TechCatalogEntry, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) CapabilityTaxonomy(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error) {
	var entries []model.CapabilityTaxonomyEntry
	if err := GetDB(ctx, r.db).Order("l1 ASC, l2 ASC, l3 ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *lookupRepository) TechCatalog(ctx context.Context) ([]model.TechCatalogEntry, error) {
	var entries []model.TechCatalogEntry
	if err := GetDB(ctx, r.db).Order("product_name ASC, product_version ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
