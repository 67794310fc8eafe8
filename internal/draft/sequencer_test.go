package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

func TestSequencerWalksWizardOrder(t *testing.T) {
	seq := NewSequencer()
	assert.Equal(t, len(model.WizardSections), seq.Len())
	assert.Equal(t, model.SectionSolutionOverview, seq.Current())
	assert.True(t, seq.IsFirst())

	visited := []model.Section{seq.Current()}
	for seq.Next() {
		visited = append(visited, seq.Current())
	}
	assert.Equal(t, model.WizardSections, visited)
	assert.True(t, seq.IsLast())
}

func TestSequencerSaturatesAtBounds(t *testing.T) {
	seq := NewSequencer()
	assert.False(t, seq.Prev(), "Prev on the first step must not move")
	assert.Equal(t, 0, seq.Index())

	for seq.Next() {
	}
	last := seq.Index()
	assert.False(t, seq.Next(), "Next on the last step must not move")
	assert.Equal(t, last, seq.Index())

	assert.True(t, seq.Prev())
	assert.Equal(t, last-1, seq.Index())
}

func TestSequencerGoTo(t *testing.T) {
	seq := NewSequencer()
	require.NoError(t, seq.GoTo(4))
	assert.Equal(t, model.WizardSections[4], seq.Current())

	assert.Error(t, seq.GoTo(-1))
	assert.Error(t, seq.GoTo(seq.Len()))
	assert.Equal(t, 4, seq.Index(), "a rejected jump must not move the cursor")
}

func TestSequencerCustomSteps(t *testing.T) {
	seq := NewSequencer(model.SectionDataAssets, model.SectionEnterpriseTools)
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, model.SectionDataAssets, seq.Current())
	assert.True(t, seq.Next())
	assert.True(t, seq.IsLast())
}
