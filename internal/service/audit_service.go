package service

import (
	"context"
	"time"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

type AuditFilter struct {
	Action string
	Page   int
	Limit  int
}

type AuditEntryResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	ListEntries(ctx context.Context, filter AuditFilter) ([]AuditEntryResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListEntries(ctx context.Context, filter AuditFilter) ([]AuditEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	entries, total, err := s.repo.List(ctx, filter.Action, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.KindServer, err, "failed to list audit entries")
	}

	result := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := AuditEntryResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
		if e.User != nil {
			resp.Username = e.User.Username
		}
		result = append(result, resp)
	}
	return result, total, nil
}
