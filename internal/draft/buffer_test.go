package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

func TestNewBufferStartsDraft(t *testing.T) {
	b := NewBuffer("SYS-001")
	snap := b.Snapshot()
	assert.Equal(t, "SYS-001", snap.SystemCode)
	assert.Equal(t, model.StateDraft, snap.DocumentState)
	assert.Empty(t, snap.BusinessCapabilities)
}

func TestReplaceSectionTouchesOnlyThatSection(t *testing.T) {
	b := NewBuffer("SYS-001")
	require.NoError(t, b.ReplaceSection(model.SectionDataAssets, []model.DataAsset{
		{ComponentName: "ledger-db", DataDomain: "Transactions"},
	}))
	require.NoError(t, b.ReplaceSection(model.SectionEnterpriseTools, []model.EnterpriseTool{
		{ToolName: "Dynatrace"},
	}))

	// Replacing one section leaves the other alone.
	require.NoError(t, b.ReplaceSection(model.SectionDataAssets, []model.DataAsset{}))
	snap := b.Snapshot()
	assert.Empty(t, snap.DataAssets)
	require.Len(t, snap.EnterpriseTools, 1)
	assert.Equal(t, "Dynatrace", snap.EnterpriseTools[0].ToolName)
}

func TestReplaceSectionRejectsMismatchedPayload(t *testing.T) {
	b := NewBuffer("SYS-001")
	require.NoError(t, b.ReplaceSection(model.SectionDataAssets, []model.DataAsset{
		{ComponentName: "ledger-db", DataDomain: "Transactions"},
	}))

	err := b.ReplaceSection(model.SectionDataAssets, []model.EnterpriseTool{{ToolName: "nope"}})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	// The buffer keeps its prior contents on a rejected replace.
	assert.Len(t, b.Snapshot().DataAssets, 1)

	err = b.ReplaceSection(model.Section("bogus"), []model.DataAsset{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReplaceSectionRejectsOverviewPayload(t *testing.T) {
	b := NewBuffer("SYS-001")
	err := b.ReplaceSection(model.SectionSolutionOverview, model.SolutionOverview{})
	assert.Error(t, err, "the overview is set through SetOverview, not ReplaceSection")
}

func TestFromReviewCopiesSections(t *testing.T) {
	original := model.SolutionReview{
		SystemCode:    "SYS-002",
		DocumentState: model.StateDraft,
		DataAssets:    []model.DataAsset{{ComponentName: "cache", DataDomain: "Sessions"}},
	}
	b := FromReview(original)
	require.NoError(t, b.ReplaceSection(model.SectionDataAssets, []model.DataAsset{}))

	assert.Len(t, original.DataAssets, 1, "seeding must not alias the caller's slices")
	assert.Empty(t, b.Snapshot().DataAssets)
}

func TestSnapshotIsDetached(t *testing.T) {
	b := NewBuffer("SYS-001")
	require.NoError(t, b.ReplaceSection(model.SectionEnterpriseTools, []model.EnterpriseTool{
		{ToolName: "Dynatrace"},
	}))
	snap := b.Snapshot()
	snap.EnterpriseTools[0].ToolName = "mutated"
	assert.Equal(t, "Dynatrace", b.Snapshot().EnterpriseTools[0].ToolName)
}

func TestWizardLifecycle(t *testing.T) {
	w := NewWizard("SYS-001")
	require.NoError(t, w.SaveOverview(model.SolutionOverview{
		SolutionName: "Payments Replatform",
		ReviewType:   model.ReviewTypeNewSolution,
		BusinessUnit: "Retail Banking",
	}))
	require.NoError(t, w.SaveSection(model.SectionEnterpriseTools, []model.EnterpriseTool{
		{ToolName: "ServiceNow"},
	}))

	review := w.Review()
	assert.Equal(t, "Payments Replatform", review.Overview.SolutionName)
	assert.Len(t, review.EnterpriseTools, 1)

	w.Close()
	assert.True(t, w.Closed())
	assert.Error(t, w.SaveOverview(model.SolutionOverview{}))
	assert.Error(t, w.SaveSection(model.SectionEnterpriseTools, []model.EnterpriseTool{}))
	assert.Empty(t, w.Review().EnterpriseTools, "a closed wizard drops its buffer")
}

func TestEditWizardSeedsFromReview(t *testing.T) {
	seed := model.SolutionReview{
		SystemCode:      "SYS-003",
		DocumentState:   model.StateDraft,
		EnterpriseTools: []model.EnterpriseTool{{ToolName: "Splunk"}},
	}
	w := EditWizard(seed)
	review := w.Review()
	assert.Equal(t, "SYS-003", review.SystemCode)
	require.Len(t, review.EnterpriseTools, 1)
	assert.Equal(t, "Splunk", review.EnterpriseTools[0].ToolName)
}
