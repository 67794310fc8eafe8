package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/notify"
	"github.com/The-Unpaid-Developers/solution-review-service/internal/workflow"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// fakeAPI implements APIClient with overridable funcs and call counters.
type fakeAPI struct {
	getAll       func(ctx context.Context) ([]model.SolutionReview, error)
	getByID      func(ctx context.Context, id string) (*model.SolutionReview, error)
	getSystemRev func(ctx context.Context, systemCode string) ([]model.SolutionReview, error)
	getSystems   func(ctx context.Context) ([]model.System, error)
	getSystem    func(ctx context.Context, code string) (*model.System, error)
	create       func(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error)
	update       func(ctx context.Context, id string, update ReviewUpdate) (*model.SolutionReview, error)
	delete       func(ctx context.Context, id string) (bool, error)
	transition   func(ctx context.Context, id string, t workflow.Transition) (*model.SolutionReview, error)

	transitionCalls int
}

func (f *fakeAPI) GetAllSolutionReviews(ctx context.Context) ([]model.SolutionReview, error) {
	return f.getAll(ctx)
}

func (f *fakeAPI) GetSolutionReviewByID(ctx context.Context, id string) (*model.SolutionReview, error) {
	return f.getByID(ctx, id)
}

func (f *fakeAPI) GetSystemSolutionReviews(ctx context.Context, systemCode string) ([]model.SolutionReview, error) {
	return f.getSystemRev(ctx, systemCode)
}

func (f *fakeAPI) GetSystems(ctx context.Context) ([]model.System, error) {
	return f.getSystems(ctx)
}

func (f *fakeAPI) GetSystemByCode(ctx context.Context, code string) (*model.System, error) {
	return f.getSystem(ctx, code)
}

func (f *fakeAPI) CreateSolutionReview(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error) {
	return f.create(ctx, in)
}

func (f *fakeAPI) UpdateSolutionReview(ctx context.Context, id string, update ReviewUpdate) (*model.SolutionReview, error) {
	return f.update(ctx, id, update)
}

func (f *fakeAPI) DeleteSolutionReview(ctx context.Context, id string) (bool, error) {
	return f.delete(ctx, id)
}

func (f *fakeAPI) TransitionDocumentState(ctx context.Context, id string, t workflow.Transition) (*model.SolutionReview, error) {
	f.transitionCalls++
	return f.transition(ctx, id, t)
}

func draftReview(id uuid.UUID, system, name string) model.SolutionReview {
	return model.SolutionReview{
		ID:            id,
		SystemCode:    system,
		DocumentState: model.StateDraft,
		Overview: model.SolutionOverview{
			SolutionName: name,
			ReviewType:   model.ReviewTypeNewSolution,
			BusinessUnit: "Retail Banking",
		},
	}
}

func TestLoadReviewsPopulatesCache(t *testing.T) {
	id := uuid.New()
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{draftReview(id, "SYS-001", "Payments")}, nil
		},
	}
	s := New(api, nil)
	defer s.Close()

	s.LoadReviews(context.Background())
	assert.Empty(t, s.Err())
	require.Len(t, s.Reviews(), 1)
	assert.False(t, s.Loading())
}

func TestLoadFailureKeepsPriorData(t *testing.T) {
	id := uuid.New()
	calls := 0
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			calls++
			if calls == 1 {
				return []model.SolutionReview{draftReview(id, "SYS-001", "Payments")}, nil
			}
			return nil, apperror.Network(assert.AnError, "boom")
		},
	}
	s := New(api, nil)
	defer s.Close()

	s.LoadReviews(context.Background())
	require.Len(t, s.Reviews(), 1)

	s.LoadReviews(context.Background())
	assert.NotEmpty(t, s.Err(), "a failed load surfaces an error")
	assert.Len(t, s.Reviews(), 1, "prior data survives the failure")
}

func TestLoadReviewMissingIsErrorState(t *testing.T) {
	api := &fakeAPI{
		getByID: func(ctx context.Context, id string) (*model.SolutionReview, error) {
			return nil, nil
		},
	}
	s := New(api, nil)
	defer s.Close()

	s.LoadReview(context.Background(), uuid.NewString())
	assert.NotEmpty(t, s.Err())
	assert.Nil(t, s.SelectedReview())
}

func TestTransitionRejectedLocallyMakesNoAPICall(t *testing.T) {
	id := uuid.New()
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{draftReview(id, "SYS-001", "Payments")}, nil
		},
		transition: func(ctx context.Context, rid string, tr workflow.Transition) (*model.SolutionReview, error) {
			t.Fatal("transition must not reach the API")
			return nil, nil
		},
	}
	s := New(api, nil)
	defer s.Close()
	s.LoadReviews(context.Background())

	_, err := s.TransitionState(context.Background(), id.String(), workflow.TransitionApprove)
	require.Error(t, err)
	assert.Equal(t, 0, api.transitionCalls)

	// The cached review keeps its state.
	require.Len(t, s.Reviews(), 1)
	assert.Equal(t, model.StateDraft, s.Reviews()[0].DocumentState)
}

func TestTransitionAdoptsServerReview(t *testing.T) {
	id := uuid.New()
	submitted := draftReview(id, "SYS-001", "Payments")
	submitted.DocumentState = model.StateSubmitted
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{draftReview(id, "SYS-001", "Payments")}, nil
		},
		transition: func(ctx context.Context, rid string, tr workflow.Transition) (*model.SolutionReview, error) {
			assert.Equal(t, workflow.TransitionSubmit, tr)
			r := submitted
			return &r, nil
		},
	}
	s := New(api, nil)
	defer s.Close()
	s.LoadReviews(context.Background())

	got, err := s.TransitionState(context.Background(), id.String(), workflow.TransitionSubmit)
	require.NoError(t, err)
	assert.Equal(t, model.StateSubmitted, got.DocumentState)
	assert.Equal(t, 1, api.transitionCalls)
	assert.Equal(t, model.StateSubmitted, s.Reviews()[0].DocumentState, "cache adopts the server result")

	msg := s.Notifier().Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelInfo, msg.Level)
}

func TestTransitionUncachedReviewGoesStraightToAPI(t *testing.T) {
	id := uuid.New()
	approved := draftReview(id, "SYS-001", "Payments")
	approved.DocumentState = model.StateApproved
	api := &fakeAPI{
		transition: func(ctx context.Context, rid string, tr workflow.Transition) (*model.SolutionReview, error) {
			r := approved
			return &r, nil
		},
	}
	s := New(api, nil)
	defer s.Close()

	// Nothing cached: the local guard cannot run, the server decides.
	got, err := s.TransitionState(context.Background(), id.String(), workflow.TransitionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StateApproved, got.DocumentState)
}

func TestCreateReviewAppendsToCache(t *testing.T) {
	id := uuid.New()
	api := &fakeAPI{
		create: func(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error) {
			r := draftReview(id, in.SystemCode, in.Overview.SolutionName)
			return &r, nil
		},
	}
	s := New(api, nil)
	defer s.Close()

	created, err := s.CreateReview(context.Background(), CreateReviewInput{
		SystemCode: "SYS-009",
		Overview:   model.SolutionOverview{SolutionName: "New Thing"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	require.Len(t, s.Reviews(), 1)
	assert.Equal(t, "SYS-009", s.Reviews()[0].SystemCode)
}

func TestCreateReviewFailureLeavesCacheAlone(t *testing.T) {
	api := &fakeAPI{
		create: func(ctx context.Context, in CreateReviewInput) (*model.SolutionReview, error) {
			return nil, apperror.Validation("bad payload")
		},
	}
	s := New(api, nil)
	defer s.Close()

	_, err := s.CreateReview(context.Background(), CreateReviewInput{})
	require.Error(t, err)
	assert.Empty(t, s.Reviews())

	msg := s.Notifier().Current()
	require.NotNil(t, msg)
	assert.Equal(t, notify.LevelError, msg.Level)
}

func TestDeleteReviewClearsSelection(t *testing.T) {
	id := uuid.New()
	review := draftReview(id, "SYS-001", "Payments")
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{review}, nil
		},
		getByID: func(ctx context.Context, rid string) (*model.SolutionReview, error) {
			r := review
			return &r, nil
		},
		delete: func(ctx context.Context, rid string) (bool, error) { return true, nil },
	}
	s := New(api, nil)
	defer s.Close()
	s.LoadReviews(context.Background())
	s.LoadReview(context.Background(), id.String())
	require.NotNil(t, s.SelectedReview())

	require.NoError(t, s.DeleteReview(context.Background(), id.String()))
	assert.Empty(t, s.Reviews())
	assert.Nil(t, s.SelectedReview())
}

func TestDeleteMissingReviewIsNotFound(t *testing.T) {
	api := &fakeAPI{
		delete: func(ctx context.Context, rid string) (bool, error) { return false, nil },
	}
	s := New(api, nil)
	defer s.Close()

	err := s.DeleteReview(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestSetFilterShallowMerges(t *testing.T) {
	s := New(&fakeAPI{}, nil)
	defer s.Close()

	system := "SYS-001"
	s.SetFilter(FilterPatch{SystemCode: &system})
	search := "payments"
	s.SetFilter(FilterPatch{Search: &search})

	f := s.Filter()
	assert.Equal(t, "SYS-001", f.SystemCode, "untouched fields survive later patches")
	assert.Equal(t, "payments", f.Search)
	assert.Empty(t, f.DocumentState)
}

func TestFilteredReviews(t *testing.T) {
	a := draftReview(uuid.New(), "SYS-001", "Payments Replatform")
	b := draftReview(uuid.New(), "SYS-002", "Ledger Rewrite")
	b.DocumentState = "ACTIVE"
	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{a, b}, nil
		},
	}
	s := New(api, nil)
	defer s.Close()
	s.LoadReviews(context.Background())

	system := "SYS-002"
	s.SetFilter(FilterPatch{SystemCode: &system})
	require.Len(t, s.FilteredReviews(), 1)
	assert.Equal(t, "SYS-002", s.FilteredReviews()[0].SystemCode)

	// State filter normalizes the legacy ACTIVE label.
	system = ""
	state := model.StateCurrent
	s.SetFilter(FilterPatch{SystemCode: &system, DocumentState: &state})
	require.Len(t, s.FilteredReviews(), 1)
	assert.Equal(t, "Ledger Rewrite", s.FilteredReviews()[0].Overview.SolutionName)

	// Search is case-insensitive on the solution name.
	state = ""
	search := "PAYMENTS"
	s.SetFilter(FilterPatch{DocumentState: &state, Search: &search})
	require.Len(t, s.FilteredReviews(), 1)
	assert.Equal(t, "Payments Replatform", s.FilteredReviews()[0].Overview.SolutionName)
}

func TestSetViewModeReloads(t *testing.T) {
	systemsLoaded := false
	api := &fakeAPI{
		getSystems: func(ctx context.Context) ([]model.System, error) {
			systemsLoaded = true
			return []model.System{{SystemCode: "SYS-001", Name: "Core Banking"}}, nil
		},
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return nil, nil
		},
	}
	s := New(api, nil)
	defer s.Close()

	s.SetViewMode(context.Background(), ViewModeSystems)
	assert.True(t, systemsLoaded)
	assert.Equal(t, ViewModeSystems, s.ViewMode())
	assert.Len(t, s.Systems(), 1)
}

func TestCanSubmitRequiresDraftAndCompleteness(t *testing.T) {
	id := uuid.New()
	complete := draftReview(id, "SYS-001", "Payments")
	complete.BusinessCapabilities = []model.BusinessCapability{{L1: "Payments", L2: "Clearing", L3: "Settlement"}}
	complete.SystemComponents = []model.SystemComponent{{Name: "api", Status: "LIVE"}}
	complete.TechnologyComponents = []model.TechnologyComponent{{ComponentName: "api", ProductName: "Kong", Usage: "gateway"}}
	complete.IntegrationFlows = []model.IntegrationFlow{{ComponentName: "api", CounterpartSystemCode: "SYS-002"}}
	complete.DataAssets = []model.DataAsset{{ComponentName: "db", DataDomain: "Transactions"}}
	complete.EnterpriseTools = []model.EnterpriseTool{{ToolName: "Dynatrace"}}
	complete.ProcessCompliances = []model.ProcessCompliance{{ProcessName: "Change Management", Status: "COMPLIANT"}}

	api := &fakeAPI{
		getAll: func(ctx context.Context) ([]model.SolutionReview, error) {
			return []model.SolutionReview{complete}, nil
		},
	}
	s := New(api, nil)
	defer s.Close()
	s.LoadReviews(context.Background())

	assert.True(t, s.CanSubmit(id.String()))

	sections, ok := s.Completeness(id.String())
	require.True(t, ok)
	for section, done := range sections {
		assert.True(t, done, "section %s", section)
	}

	// Unknown review: no checklist, no submit.
	_, ok = s.Completeness(uuid.NewString())
	assert.False(t, ok)
	assert.False(t, s.CanSubmit(uuid.NewString()))
}
