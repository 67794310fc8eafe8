package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

func TestNextValidPairs(t *testing.T) {
	cases := []struct {
		from       string
		transition Transition
		want       string
	}{
		{model.StateDraft, TransitionSubmit, model.StateSubmitted},
		{model.StateSubmitted, TransitionRemoveSubmission, model.StateDraft},
		{model.StateSubmitted, TransitionApprove, model.StateApproved},
		{model.StateApproved, TransitionUnapprove, model.StateSubmitted},
		{model.StateApproved, TransitionActivate, model.StateCurrent},
		{model.StateCurrent, TransitionMarkOutdated, model.StateOutdated},
		{model.StateOutdated, TransitionResetCurrent, model.StateCurrent},
		{model.StateSubmitted, TransitionReject, model.StateRejected},
		{model.StateRejected, TransitionReopen, model.StateDraft},
	}
	for _, tc := range cases {
		t.Run(string(tc.transition)+"_from_"+tc.from, func(t *testing.T) {
			got, err := Next(tc.from, tc.transition)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextRejectsEveryOtherPair(t *testing.T) {
	states := []string{
		model.StateDraft, model.StateSubmitted, model.StateApproved,
		model.StateCurrent, model.StateOutdated, model.StateRejected,
	}
	valid := map[Transition]string{
		TransitionSubmit:           model.StateDraft,
		TransitionRemoveSubmission: model.StateSubmitted,
		TransitionApprove:          model.StateSubmitted,
		TransitionUnapprove:        model.StateApproved,
		TransitionActivate:         model.StateApproved,
		TransitionMarkOutdated:     model.StateCurrent,
		TransitionResetCurrent:     model.StateOutdated,
		TransitionReject:           model.StateSubmitted,
		TransitionReopen:           model.StateRejected,
	}

	for transition, validFrom := range valid {
		for _, from := range states {
			if from == validFrom {
				continue
			}
			_, err := Next(from, transition)
			require.Error(t, err, "expected %s from %s to be rejected", transition, from)
			assert.True(t, errors.Is(err, ErrInvalidTransition))

			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, from, te.From)
			assert.Equal(t, transition, te.Transition)
		}
	}
}

func TestNextUnknownTransition(t *testing.T) {
	_, err := Next(model.StateDraft, Transition("TELEPORT"))
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestNextNormalizesLegacyActive(t *testing.T) {
	got, err := Next("ACTIVE", TransitionMarkOutdated)
	require.NoError(t, err)
	assert.Equal(t, model.StateOutdated, got)
}

func TestValidTransitions(t *testing.T) {
	assert.Equal(t, []Transition{TransitionSubmit}, ValidTransitions(model.StateDraft))
	assert.ElementsMatch(t,
		[]Transition{TransitionRemoveSubmission, TransitionApprove, TransitionReject},
		ValidTransitions(model.StateSubmitted))
	assert.ElementsMatch(t,
		[]Transition{TransitionUnapprove, TransitionActivate},
		ValidTransitions(model.StateApproved))
	assert.Empty(t, ValidTransitions("NOT_A_STATE"))
}

func TestParseTransition(t *testing.T) {
	got, err := ParseTransition("APPROVE")
	require.NoError(t, err)
	assert.Equal(t, TransitionApprove, got)

	_, err = ParseTransition("approve")
	assert.Error(t, err)

	_, err = ParseTransition("")
	assert.Error(t, err)
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, model.StateCurrent, NormalizeState("ACTIVE"))
	assert.Equal(t, model.StateCurrent, NormalizeState(model.StateCurrent))
	assert.Equal(t, model.StateDraft, NormalizeState(model.StateDraft))
}

func TestIsKnownState(t *testing.T) {
	assert.True(t, IsKnownState(model.StateDraft))
	assert.True(t, IsKnownState("ACTIVE"))
	assert.False(t, IsKnownState("PENDING"))
	assert.False(t, IsKnownState(""))
}
