package repository

import (
	"context"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository defines data access for SolutionReview aggregates.
// Reads always hydrate the section collections; section writes replace one
// collection wholesale, matching the wizard's save-per-section model.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.SolutionReview) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SolutionReview, error)
	FindAll(ctx context.Context) ([]model.SolutionReview, error)
	FindBySystemCode(ctx context.Context, systemCode string) ([]model.SolutionReview, error)
	Save(ctx context.Context, review *model.SolutionReview) error
	ReplaceSection(ctx context.Context, reviewID uuid.UUID, section model.Section, records any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

var sectionPreloads = []string{
	"BusinessCapabilities",
	"SystemComponents",
	"TechnologyComponents",
	"IntegrationFlows",
	"DataAssets",
	"EnterpriseTools",
	"ProcessCompliances",
}

func withSections(db *gorm.DB) *gorm.DB {
	for _, assoc := range sectionPreloads {
		db = db.Preload(assoc)
	}
	return db
}

func (r *reviewRepository) Create(ctx context.Context, review *model.SolutionReview) error {
	return GetDB(ctx, r.db).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SolutionReview, error) {
	var review model.SolutionReview
	if err := withSections(GetDB(ctx, r.db)).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]model.SolutionReview, error) {
	var reviews []model.SolutionReview
	if err := withSections(GetDB(ctx, r.db)).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindBySystemCode(ctx context.Context, systemCode string) ([]model.SolutionReview, error) {
	var reviews []model.SolutionReview
	err := withSections(GetDB(ctx, r.db)).
		Where("system_code = ?", systemCode).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save persists the scalar fields of the aggregate row. Section
// collections are written through ReplaceSection only.
func (r *reviewRepository) Save(ctx context.Context, review *model.SolutionReview) error {
	return GetDB(ctx, r.db).Omit(sectionPreloads...).Save(review).Error
}

// ReplaceSection swaps one section's rows: delete the review's existing
// records for that section, insert the new list. Run inside RunInTx so a
// failed insert never leaves the section half-written.
func (r *reviewRepository) ReplaceSection(ctx context.Context, reviewID uuid.UUID, section model.Section, records any) error {
	db := GetDB(ctx, r.db)
	switch section {
	case model.SectionBusinessCapabilities:
		return replaceChildren(db, reviewID, records.([]model.BusinessCapability))
	case model.SectionSystemComponents:
		return replaceChildren(db, reviewID, records.([]model.SystemComponent))
	case model.SectionTechnologyComponents:
		return replaceChildren(db, reviewID, records.([]model.TechnologyComponent))
	case model.SectionIntegrationFlows:
		return replaceChildren(db, reviewID, records.([]model.IntegrationFlow))
	case model.SectionDataAssets:
		return replaceChildren(db, reviewID, records.([]model.DataAsset))
	case model.SectionEnterpriseTools:
		return replaceChildren(db, reviewID, records.([]model.EnterpriseTool))
	case model.SectionProcessCompliances:
		return replaceChildren(db, reviewID, records.([]model.ProcessCompliance))
	default:
		return gorm.ErrInvalidData
	}
}

func replaceChildren[T any](db *gorm.DB, reviewID uuid.UUID, records []T) error {
	if err := db.Where("review_id = ?", reviewID).Delete(new(T)).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return db.Create(&records).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.SolutionReview{}).Error
}
