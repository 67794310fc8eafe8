// Package store is the client-side data layer behind the listing and
// detail views: a cache of reviews and systems, the current selection,
// loading/error status and filter criteria, with CRUD and state-transition
// operations delegated to an APIClient.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/notify"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// CreateReviewInput is the payload for creating a review from its
// overview. The document starts in DRAFT.
type CreateReviewInput struct {
	SystemCode string                 `json:"system_code"`
	Overview   model.SolutionOverview `json:"solution_overview"`
}

// ReviewUpdate is a partial update. Nil section pointers mean "not
// touched"; a pointer to an empty slice clears the section. DocumentState
// is deliberately absent: state only moves through transitions.
type ReviewUpdate struct {
	Overview             *model.SolutionOverview     `json:"solution_overview,omitempty"`
	BusinessCapabilities *[]model.BusinessCapability `json:"business_capabilities,omitempty"`
	SystemComponents     *[]model.SystemComponent    `json:"system_components,omitempty"`
	TechnologyComponents *[]model.TechnologyComponent `json:"technology_components,omitempty"`
	IntegrationFlows     *[]model.IntegrationFlow    `json:"integration_flows,omitempty"`
	DataAssets           *[]model.DataAsset          `json:"data_assets,omitempty"`
	EnterpriseTools      *[]model.EnterpriseTool     `json:"enterprise_tools,omitempty"`
	ProcessCompliances   *[]model.ProcessCompliance  `json:"process_compliances,omitempty"`
}

// APIClient is the backend contract the store depends on. The HTTP
// implementation lives in internal/client; tests substitute a fake.
type APIClient interface {
	GetAllSolutionReviews(ctx context.Context) ([]model.SolutionReview, error)
	GetSolutionReviewByID(ctx context.Context, id string) (*model.SolutionReview, error)
	GetSystemSolutionReviews(ctx context.Context, systemCode string) ([]model.SolutionReview, error)
	GetSystems(ctx context.Context) ([]model.System, error)
	GetSystemByCode(ctx context.Context, code string) (*model.System, error)
	CreateSolutionReview(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error)
	UpdateSolutionReview(ctx context.Context, id string, update ReviewUpdate) (*model.SolutionReview, error)
	DeleteSolutionReview(ctx context.Context, id string) (bool, error)
	TransitionDocumentState(ctx context.Context, id string, t workflow.Transition) (*model.SolutionReview, error)
}

type ViewMode string

const (
	ViewModeSystems ViewMode = "systems"
	ViewModeReviews ViewMode = "reviews"
)

// Filter narrows the review listing. Empty fields match everything.
type Filter struct {
	SystemCode    string
	DocumentState string
	Search        string
}

// FilterPatch shallow-merges into the current filter; nil fields are left
// alone.
type FilterPatch struct {
	SystemCode    *string
	DocumentState *string
	Search        *string
}

// Store is constructed explicitly and passed to its consumers; there is no
// package-level instance. Close releases the notifier timer.
type Store struct {
	api      APIClient
	log      *logrus.Logger
	notifier *notify.Notifier

	mu             sync.RWMutex
	reviews        []model.SolutionReview
	systems        []model.System
	selectedReview *model.SolutionReview
	selectedSystem *model.System
	viewMode       ViewMode
	loading        bool
	lastError      string
	filter         Filter
}

func New(api APIClient, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		api:      api,
		log:      log,
		notifier: notify.New(notify.DefaultTTL),
		viewMode: ViewModeReviews,
	}
}

func (s *Store) Close() { s.notifier.Close() }

func (s *Store) Notifier() *notify.Notifier { return s.notifier }

// --- Read operations ---
// Loads convert failures into the error slice and keep the previous data;
// they never propagate the error to the caller beyond making it visible.
// Racing loads are allowed; the last response to land wins.

func (s *Store) LoadReviews(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	reviews, err := s.api.GetAllSolutionReviews(ctx)
	if err != nil {
		s.failLoad("failed to load reviews", err)
		return
	}
	s.mu.Lock()
	s.reviews = reviews
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) LoadSystems(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	systems, err := s.api.GetSystems(ctx)
	if err != nil {
		s.failLoad("failed to load systems", err)
		return
	}
	s.mu.Lock()
	s.systems = systems
	s.lastError = ""
	s.mu.Unlock()
}

// LoadReview fetches one review into the selection. A null result is an
// error state, not an empty success.
func (s *Store) LoadReview(ctx context.Context, id string) {
	s.setLoading(true)
	defer s.setLoading(false)

	review, err := s.api.GetSolutionReviewByID(ctx, id)
	if err != nil {
		s.failLoad("failed to load review "+id, err)
		return
	}
	if review == nil {
		s.failLoad("review "+id+" not found", apperror.NotFound("review %s not found", id))
		return
	}
	s.mu.Lock()
	s.selectedReview = review
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) LoadSystem(ctx context.Context, systemCode string) {
	s.setLoading(true)
	defer s.setLoading(false)

	system, err := s.api.GetSystemByCode(ctx, systemCode)
	if err != nil {
		s.failLoad("failed to load system "+systemCode, err)
		return
	}
	if system == nil {
		s.failLoad("system "+systemCode+" not found", apperror.NotFound("system %s not found", systemCode))
		return
	}
	s.mu.Lock()
	s.selectedSystem = system
	s.lastError = ""
	s.mu.Unlock()
}

// LoadSystemReviews replaces the review listing with one system's reviews.
// An empty list is a valid result here.
func (s *Store) LoadSystemReviews(ctx context.Context, systemCode string) {
	s.setLoading(true)
	defer s.setLoading(false)

	reviews, err := s.api.GetSystemSolutionReviews(ctx, systemCode)
	if err != nil {
		s.failLoad("failed to load reviews for "+systemCode, err)
		return
	}
	s.mu.Lock()
	s.reviews = reviews
	s.lastError = ""
	s.mu.Unlock()
}

// --- Mutations ---
// Mutations reject on failure with no partial apply, surfacing the error
// through the notifier and to the caller.

// CreateReview persists a new review and appends it to the cache. The
// created review is returned so the caller can navigate to it.
func (s *Store) CreateReview(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error) {
	created, err := s.api.CreateSolutionReview(ctx, in)
	if err != nil {
		s.notifyErr("create failed", err)
		return nil, err
	}
	s.mu.Lock()
	s.reviews = append(s.reviews, *created)
	s.mu.Unlock()
	s.notifier.Push(notify.LevelInfo, "review created")
	return created, nil
}

func (s *Store) UpdateReview(ctx context.Context, id string, update ReviewUpdate) (*model.SolutionReview, error) {
	updated, err := s.api.UpdateSolutionReview(ctx, id, update)
	if err != nil {
		s.notifyErr("save failed", err)
		return nil, err
	}
	s.replaceCached(updated)
	s.notifier.Push(notify.LevelInfo, "review saved")
	return updated, nil
}

// TransitionState enacts a named lifecycle transition. The transition is
// validated against the cached document state first: an illegal pair is
// rejected before any network call, leaving everything untouched. On
// success the server-returned review replaces the cached one — the new
// state is never guessed locally.
func (s *Store) TransitionState(ctx context.Context, id string, t workflow.Transition) (*model.SolutionReview, error) {
	if current, ok := s.cachedState(id); ok {
		if _, err := workflow.Next(current, t); err != nil {
			s.notifyErr("transition rejected", err)
			return nil, err
		}
	}
	updated, err := s.api.TransitionDocumentState(ctx, id, t)
	if err != nil {
		s.notifyErr("transition failed", err)
		return nil, err
	}
	s.replaceCached(updated)
	s.notifier.Push(notify.LevelInfo, "review is now "+updated.DocumentState)
	return updated, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	ok, err := s.api.DeleteSolutionReview(ctx, id)
	if err != nil {
		s.notifyErr("delete failed", err)
		return err
	}
	if !ok {
		err := apperror.NotFound("review %s not found", id)
		s.notifyErr("delete failed", err)
		return err
	}
	s.mu.Lock()
	kept := s.reviews[:0]
	for _, r := range s.reviews {
		if r.ID.String() != id {
			kept = append(kept, r)
		}
	}
	s.reviews = kept
	if s.selectedReview != nil && s.selectedReview.ID.String() == id {
		s.selectedReview = nil
	}
	s.mu.Unlock()
	s.notifier.Push(notify.LevelInfo, "review deleted")
	return nil
}

// --- Filter and view mode ---

// SetFilter shallow-merges the patch into the current filter.
func (s *Store) SetFilter(patch FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.SystemCode != nil {
		s.filter.SystemCode = *patch.SystemCode
	}
	if patch.DocumentState != nil {
		s.filter.DocumentState = *patch.DocumentState
	}
	if patch.Search != nil {
		s.filter.Search = *patch.Search
	}
}

// SetViewMode switches between the systems and reviews listings and
// reloads the corresponding collection.
func (s *Store) SetViewMode(ctx context.Context, mode ViewMode) {
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
	switch mode {
	case ViewModeSystems:
		s.LoadSystems(ctx)
	case ViewModeReviews:
		s.LoadReviews(ctx)
	}
}

// --- Submission gating ---

// Completeness returns the per-section submit checklist for a cached
// review.
func (s *Store) Completeness(id string) (map[model.Section]bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.findLocked(id)
	if r == nil {
		return nil, false
	}
	return workflow.Completeness(r), true
}

// CanSubmit reports whether the submit confirmation should be enabled for
// a cached review. Advisory only; the server re-validates.
func (s *Store) CanSubmit(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.findLocked(id)
	return r != nil && workflow.ReadyToSubmit(r) &&
		workflow.NormalizeState(r.DocumentState) == model.StateDraft
}

// --- Accessors ---

func (s *Store) Reviews() []model.SolutionReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SolutionReview, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// FilteredReviews applies the current filter to the cached listing.
func (s *Store) FilteredReviews() []model.SolutionReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.SolutionReview
	for _, r := range s.reviews {
		if s.filter.SystemCode != "" && r.SystemCode != s.filter.SystemCode {
			continue
		}
		if s.filter.DocumentState != "" &&
			workflow.NormalizeState(r.DocumentState) != workflow.NormalizeState(s.filter.DocumentState) {
			continue
		}
		if s.filter.Search != "" && !containsFold(r.Overview.SolutionName, s.filter.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *Store) Systems() []model.System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.System, len(s.systems))
	copy(out, s.systems)
	return out
}

func (s *Store) SelectedReview() *model.SolutionReview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedReview == nil {
		return nil
	}
	r := *s.selectedReview
	return &r
}

func (s *Store) SelectedSystem() *model.System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedSystem == nil {
		return nil
	}
	sys := *s.selectedSystem
	return &sys
}

func (s *Store) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// --- internals ---

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) failLoad(msg string, err error) {
	s.log.WithError(err).Warn(msg)
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func (s *Store) notifyErr(msg string, err error) {
	s.log.WithError(err).Warn(msg)
	s.notifier.Push(notify.LevelError, msg+": "+err.Error())
}

func (s *Store) cachedState(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.findLocked(id); r != nil {
		return r.DocumentState, true
	}
	return "", false
}

func (s *Store) findLocked(id string) *model.SolutionReview {
	if s.selectedReview != nil && s.selectedReview.ID.String() == id {
		return s.selectedReview
	}
	for i := range s.reviews {
		if s.reviews[i].ID.String() == id {
			return &s.reviews[i]
		}
	}
	return nil
}

func (s *Store) replaceCached(updated *model.SolutionReview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == updated.ID {
			s.reviews[i] = *updated
			break
		}
	}
	if s.selectedReview != nil && s.selectedReview.ID == updated.ID {
		r := *updated
		s.selectedReview = &r
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
