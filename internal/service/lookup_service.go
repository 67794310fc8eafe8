package service

import (
	"context"
	"sync"
	"time"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// LookupService serves the capability taxonomy and tech-component catalog
// that feed the wizard's cascading selects. Both tables change rarely, so
// results are cached with a TTL rather than hit per request.
type LookupService interface {
	CapabilityTaxonomy(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error)
	TechCatalog(ctx context.Context) ([]model.TechCatalogEntry, error)
}

const lookupCacheTTL = 5 * time.Minute

type lookupService struct {
	repo repository.LookupRepository

	mu            sync.Mutex
	capabilities  []model.CapabilityTaxonomyEntry
	capExpiresAt  time.Time
	catalog       []model.TechCatalogEntry
	techExpiresAt time.Time
}

func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) CapabilityTaxonomy(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capabilities != nil && time.Now().Before(s.capExpiresAt) {
		return s.capabilities, nil
	}
	entries, err := s.repo.CapabilityTaxonomy(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to load capability taxonomy")
	}
	s.capabilities = entries
	s.capExpiresAt = time.Now().Add(lookupCacheTTL)
	return entries, nil
}

func (s *lookupService) TechCatalog(ctx context.Context) ([]model.TechCatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil && time.Now().Before(s.techExpiresAt) {
		return s.catalog, nil
	}
	entries, err := s.repo.TechCatalog(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to load tech catalog")
	}
	s.catalog = entries
	s.techExpiresAt = time.Now().Add(lookupCacheTTL)
	return entries, nil
}
