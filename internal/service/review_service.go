package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/repository"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// --- DTOs ---

type OverviewPayload struct {
	SolutionName     string   `json:"solution_name" binding:"required"`
	ReviewType       string   `json:"review_type" binding:"required,oneof=NEW_SOLUTION MAJOR_CHANGE PERIODIC"`
	BusinessUnit     string   `json:"business_unit" binding:"required"`
	BusinessDriver   string   `json:"business_driver"`
	ValueOutcome     string   `json:"value_outcome"`
	ApplicationUsers []string `json:"application_users"`
	Concerns         []string `json:"concerns"`
}

type CreateReviewRequest struct {
	SystemCode string          `json:"system_code" binding:"required"`
	Overview   OverviewPayload `json:"solution_overview" binding:"required"`
}

// UpdateReviewRequest is a partial update. Nil pointers mean "section not
// touched"; a pointer to an empty slice clears the section. The document
// state is not updatable here — it only moves through transitions.
type UpdateReviewRequest struct {
	Overview             *OverviewPayload             `json:"solution_overview"`
	BusinessCapabilities *[]model.BusinessCapability  `json:"business_capabilities"`
	SystemComponents     *[]model.SystemComponent     `json:"system_components"`
	TechnologyComponents *[]model.TechnologyComponent `json:"technology_components"`
	IntegrationFlows     *[]model.IntegrationFlow     `json:"integration_flows"`
	DataAssets           *[]model.DataAsset           `json:"data_assets"`
	EnterpriseTools      *[]model.EnterpriseTool      `json:"enterprise_tools"`
	ProcessCompliances   *[]model.ProcessCompliance   `json:"process_compliances"`
}

type TransitionRequest struct {
	Transition string `json:"transition" binding:"required"`
	Reason     string `json:"reason"`
}

// PrecheckResponse is the submit checklist for one review.
type PrecheckResponse struct {
	Sections      map[model.Section]bool `json:"sections"`
	ReadyToSubmit bool                   `json:"ready_to_submit"`
	Missing       []model.Section        `json:"missing,omitempty"`
}

// Actor identifies who performed a mutation, for audit and lastModifiedBy.
type Actor struct {
	UserID   string
	Username string
}

// --- Interface ---

type ReviewService interface {
	CreateReview(ctx context.Context, req CreateReviewRequest, actor Actor) (*model.SolutionReview, error)
	GetReview(ctx context.Context, id string) (*model.SolutionReview, error)
	ListReviews(ctx context.Context) ([]model.SolutionReview, error)
	ListSystemReviews(ctx context.Context, systemCode string) ([]model.SolutionReview, error)
	UpdateReview(ctx context.Context, id string, req UpdateReviewRequest, actor Actor) (*model.SolutionReview, error)
	DeleteReview(ctx context.Context, id string, actor Actor) error
	Transition(ctx context.Context, id string, req TransitionRequest, actor Actor) (*model.SolutionReview, error)
	Precheck(ctx context.Context, id string) (*PrecheckResponse, error)
}

// StateEvent is broadcast on the websocket hub after a successful
// transition.
type StateEvent struct {
	Type       string `json:"type"`
	ReviewID   string `json:"review_id"`
	SystemCode string `json:"system_code"`
	FromState  string `json:"from_state"`
	ToState    string `json:"to_state"`
}

type reviewService struct {
	reviews repository.ReviewRepository
	audits  repository.AuditRepository
	tx      repository.TransactionManager
	hub     interface{ GetBroadcast() chan []byte } // optional websocket hub
	log     *logrus.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	hub interface{ GetBroadcast() chan []byte },
	log *logrus.Logger,
) ReviewService {
	return &reviewService{reviews: reviews, audits: audits, tx: tx, hub: hub, log: log}
}

// --- Implementation ---

func (s *reviewService) CreateReview(ctx context.Context, req CreateReviewRequest, actor Actor) (*model.SolutionReview, error) {
	review := &model.SolutionReview{
		SystemCode:     req.SystemCode,
		DocumentState:  model.StateDraft,
		Overview:       toOverview(req.Overview),
		CreatedBy:      actor.Username,
		LastModifiedBy: actor.Username,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.reviews.Create(txCtx, review); createErr != nil {
			return apperror.Wrap(apperror.KindServer, createErr, "failed to create review")
		}
		return s.writeAudit(txCtx, actor, model.ActionCreateReview, review, map[string]any{
			"system_code": req.SystemCode,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, review.ID)
}

func (s *reviewService) GetReview(ctx context.Context, id string) (*model.SolutionReview, error) {
	reviewID, err := parseReviewID(id)
	if err != nil {
		return nil, err
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, mapRepoErr(err, "review %s", id)
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context) ([]model.SolutionReview, error) {
	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to list reviews")
	}
	return reviews, nil
}

// ListSystemReviews returns an empty slice, not an error, for a system
// with no reviews yet.
func (s *reviewService) ListSystemReviews(ctx context.Context, systemCode string) ([]model.SolutionReview, error) {
	if systemCode == "" {
		return nil, apperror.Validation("system code is required")
	}
	reviews, err := s.reviews.FindBySystemCode(ctx, systemCode)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to list reviews for %s", systemCode)
	}
	if reviews == nil {
		reviews = []model.SolutionReview{}
	}
	return reviews, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id string, req UpdateReviewRequest, actor Actor) (*model.SolutionReview, error) {
	reviewID, err := parseReviewID(id)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		review, findErr := s.reviews.FindByID(txCtx, reviewID)
		if findErr != nil {
			return mapRepoErr(findErr, "review %s", id)
		}

		if req.Overview != nil {
			review.Overview = toOverview(*req.Overview)
		}
		if replaceErr := s.replaceSections(txCtx, reviewID, req); replaceErr != nil {
			return replaceErr
		}

		review.LastModifiedBy = actor.Username
		if saveErr := s.reviews.Save(txCtx, review); saveErr != nil {
			return apperror.Wrap(apperror.KindServer, saveErr, "failed to save review")
		}
		return s.writeAudit(txCtx, actor, model.ActionUpdateReview, review, map[string]any{
			"sections": touchedSections(req),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, reviewID)
}

// replaceSections swaps each section the request carries. Records coming
// from the client may hold temporary identities (ClientRef tokens or
// client-chosen UUIDs); both are discarded so the database assigns the
// final identity.
func (s *reviewService) replaceSections(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest) error {
	if req.BusinessCapabilities != nil {
		records := normalizeRecords(*req.BusinessCapabilities, func(r *model.BusinessCapability) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionBusinessCapabilities, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace business capabilities")
		}
	}
	if req.SystemComponents != nil {
		records := normalizeRecords(*req.SystemComponents, func(r *model.SystemComponent) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionSystemComponents, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace system components")
		}
	}
	if req.TechnologyComponents != nil {
		records := normalizeRecords(*req.TechnologyComponents, func(r *model.TechnologyComponent) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionTechnologyComponents, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace technology components")
		}
	}
	if req.IntegrationFlows != nil {
		records := normalizeRecords(*req.IntegrationFlows, func(r *model.IntegrationFlow) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionIntegrationFlows, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace integration flows")
		}
	}
	if req.DataAssets != nil {
		records := normalizeRecords(*req.DataAssets, func(r *model.DataAsset) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionDataAssets, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace data assets")
		}
	}
	if req.EnterpriseTools != nil {
		records := normalizeRecords(*req.EnterpriseTools, func(r *model.EnterpriseTool) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionEnterpriseTools, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace enterprise tools")
		}
	}
	if req.ProcessCompliances != nil {
		records := normalizeRecords(*req.ProcessCompliances, func(r *model.ProcessCompliance) {
			r.ID = uuid.Nil
			r.ReviewID = reviewID
			r.ClientRef = ""
		})
		if err := s.reviews.ReplaceSection(ctx, reviewID, model.SectionProcessCompliances, records); err != nil {
			return apperror.Wrap(apperror.KindServer, err, "failed to replace process compliances")
		}
	}
	return nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string, actor Actor) error {
	reviewID, err := parseReviewID(id)
	if err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		review, findErr := s.reviews.FindByID(txCtx, reviewID)
		if findErr != nil {
			return mapRepoErr(findErr, "review %s", id)
		}
		if delErr := s.reviews.Delete(txCtx, reviewID); delErr != nil {
			return apperror.Wrap(apperror.KindServer, delErr, "failed to delete review")
		}
		return s.writeAudit(txCtx, actor, model.ActionDeleteReview, review, map[string]any{
			"document_state": review.DocumentState,
		})
	})
}

// Transition enacts one lifecycle transition. The pair is validated
// against the state table before anything is written; SUBMIT additionally
// requires every section to be complete. On any failure the review keeps
// its prior state.
func (s *reviewService) Transition(ctx context.Context, id string, req TransitionRequest, actor Actor) (*model.SolutionReview, error) {
	reviewID, err := parseReviewID(id)
	if err != nil {
		return nil, err
	}
	transition, err := workflow.ParseTransition(req.Transition)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, err, "bad transition")
	}

	var fromState, toState, systemCode string
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		review, findErr := s.reviews.FindByID(txCtx, reviewID)
		if findErr != nil {
			return mapRepoErr(findErr, "review %s", id)
		}

		next, nextErr := workflow.Next(review.DocumentState, transition)
		if nextErr != nil {
			return apperror.Wrap(apperror.KindValidation, nextErr, "transition rejected")
		}

		if transition == workflow.TransitionSubmit {
			if missing := workflow.MissingSections(review); len(missing) > 0 {
				return apperror.Validation("cannot submit: incomplete sections %v", missing)
			}
		}

		fromState = workflow.NormalizeState(review.DocumentState)
		toState = next
		systemCode = review.SystemCode
		review.DocumentState = next
		review.LastModifiedBy = actor.Username
		switch transition {
		case workflow.TransitionReject:
			review.RejectionReason = req.Reason
		case workflow.TransitionReopen:
			review.RejectionReason = ""
		}

		if saveErr := s.reviews.Save(txCtx, review); saveErr != nil {
			return apperror.Wrap(apperror.KindServer, saveErr, "failed to persist transition")
		}
		return s.writeAudit(txCtx, actor, model.ActionTransitionState, review, map[string]any{
			"transition": transition,
			"from":       fromState,
			"to":         toState,
			"reason":     req.Reason,
		})
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(StateEvent{
		Type:       "REVIEW_STATE_CHANGED",
		ReviewID:   reviewID.String(),
		SystemCode: systemCode,
		FromState:  fromState,
		ToState:    toState,
	})
	return s.reload(ctx, reviewID)
}

func (s *reviewService) Precheck(ctx context.Context, id string) (*PrecheckResponse, error) {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PrecheckResponse{
		Sections:      workflow.Completeness(review),
		ReadyToSubmit: workflow.ReadyToSubmit(review),
		Missing:       workflow.MissingSections(review),
	}, nil
}

// --- Helpers ---

func (s *reviewService) reload(ctx context.Context, id uuid.UUID) (*model.SolutionReview, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindServer, err, "failed to reload review")
	}
	return review, nil
}

func (s *reviewService) writeAudit(ctx context.Context, actor Actor, action string, review *model.SolutionReview, details map[string]any) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   review.ID.String(),
		EntityName: review.Overview.SolutionName,
		Details:    string(payload),
	}
	if actorID, parseErr := uuid.Parse(actor.UserID); parseErr == nil {
		entry.UserID = &actorID
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return apperror.Wrap(apperror.KindServer, err, "failed to write audit log")
	}
	return nil
}

func (s *reviewService) broadcast(event StateEvent) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case s.hub.GetBroadcast() <- payload:
	default:
		s.log.Warn("websocket broadcast buffer full, dropping state event")
	}
}

func toOverview(p OverviewPayload) model.SolutionOverview {
	return model.SolutionOverview{
		SolutionName:     p.SolutionName,
		ReviewType:       p.ReviewType,
		BusinessUnit:     p.BusinessUnit,
		BusinessDriver:   p.BusinessDriver,
		ValueOutcome:     p.ValueOutcome,
		ApplicationUsers: p.ApplicationUsers,
		Concerns:         p.Concerns,
	}
}

func touchedSections(req UpdateReviewRequest) []model.Section {
	var out []model.Section
	if req.Overview != nil {
		out = append(out, model.SectionSolutionOverview)
	}
	if req.BusinessCapabilities != nil {
		out = append(out, model.SectionBusinessCapabilities)
	}
	if req.SystemComponents != nil {
		out = append(out, model.SectionSystemComponents)
	}
	if req.TechnologyComponents != nil {
		out = append(out, model.SectionTechnologyComponents)
	}
	if req.IntegrationFlows != nil {
		out = append(out, model.SectionIntegrationFlows)
	}
	if req.DataAssets != nil {
		out = append(out, model.SectionDataAssets)
	}
	if req.EnterpriseTools != nil {
		out = append(out, model.SectionEnterpriseTools)
	}
	if req.ProcessCompliances != nil {
		out = append(out, model.SectionProcessCompliances)
	}
	return out
}

func normalizeRecords[T any](records []T, fix func(*T)) []T {
	out := make([]T, len(records))
	copy(out, records)
	for i := range out {
		fix(&out[i])
	}
	return out
}

func parseReviewID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.Nil, apperror.Validation("review id is required")
	}
	reviewID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.Wrap(apperror.KindValidation, err, "invalid review id %q", id)
	}
	return reviewID, nil
}

func mapRepoErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(apperror.KindNotFound, err, format+" not found", args...)
	}
	return apperror.Wrap(apperror.KindServer, err, "storage failure")
}
