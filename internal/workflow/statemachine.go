// Package workflow holds the document lifecycle rules for solution
// reviews: the state-transition table and the submission completeness
// check. It is pure logic with no I/O so the rules are enforceable both in
// the service layer and in the client-side store before a request is made.
package workflow

import (
	"errors"
	"fmt"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

// Transition names a lifecycle operation on a solution review.
type Transition string

const (
	TransitionSubmit           Transition = "SUBMIT"
	TransitionRemoveSubmission Transition = "REMOVE_SUBMISSION"
	TransitionApprove          Transition = "APPROVE"
	TransitionUnapprove        Transition = "UNAPPROVE"
	TransitionActivate         Transition = "ACTIVATE"
	TransitionMarkOutdated     Transition = "MARK_OUTDATED"
	TransitionResetCurrent     Transition = "RESET_CURRENT"
	TransitionReject           Transition = "REJECT"
	TransitionReopen           Transition = "REOPEN"
)

// ErrInvalidTransition is the sentinel matched by errors.Is for any
// transition attempted from a state it is not valid in.
var ErrInvalidTransition = errors.New("invalid document state transition")

// TransitionError reports a transition attempted from a state it is not
// defined for.
type TransitionError struct {
	From       string
	Transition Transition
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s is not allowed from state %s", e.Transition, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// transitions maps each transition to the source states it is valid from
// and the state it lands in.
var transitions = map[Transition]map[string]string{
	TransitionSubmit:           {model.StateDraft: model.StateSubmitted},
	TransitionRemoveSubmission: {model.StateSubmitted: model.StateDraft},
	TransitionApprove:          {model.StateSubmitted: model.StateApproved},
	TransitionUnapprove:        {model.StateApproved: model.StateSubmitted},
	TransitionActivate:         {model.StateApproved: model.StateCurrent},
	TransitionMarkOutdated:     {model.StateCurrent: model.StateOutdated},
	TransitionResetCurrent:     {model.StateOutdated: model.StateCurrent},
	TransitionReject:           {model.StateSubmitted: model.StateRejected},
	TransitionReopen:           {model.StateRejected: model.StateDraft},
}

// Next returns the state a review in `current` moves to under `t`, or a
// TransitionError when the pair is not in the table. The caller must not
// have produced any side effect before calling Next.
func Next(current string, t Transition) (string, error) {
	current = NormalizeState(current)
	targets, ok := transitions[t]
	if !ok {
		return "", &TransitionError{From: current, Transition: t}
	}
	next, ok := targets[current]
	if !ok {
		return "", &TransitionError{From: current, Transition: t}
	}
	return next, nil
}

// ValidTransitions lists the transitions available from a state, in table
// order. Useful for rendering action menus.
func ValidTransitions(current string) []Transition {
	current = NormalizeState(current)
	var out []Transition
	for _, t := range allTransitions {
		if _, ok := transitions[t][current]; ok {
			out = append(out, t)
		}
	}
	return out
}

var allTransitions = []Transition{
	TransitionSubmit,
	TransitionRemoveSubmission,
	TransitionApprove,
	TransitionUnapprove,
	TransitionActivate,
	TransitionMarkOutdated,
	TransitionResetCurrent,
	TransitionReject,
	TransitionReopen,
}

// ParseTransition validates a wire-format transition name.
func ParseTransition(name string) (Transition, error) {
	t := Transition(name)
	if _, ok := transitions[t]; !ok {
		return "", fmt.Errorf("unknown transition %q", name)
	}
	return t, nil
}

// NormalizeState maps the legacy "ACTIVE" label onto CURRENT and leaves
// every other value untouched.
func NormalizeState(state string) string {
	if state == "ACTIVE" {
		return model.StateCurrent
	}
	return state
}

// IsKnownState reports whether state (after normalization) is one of the
// lifecycle states.
func IsKnownState(state string) bool {
	switch NormalizeState(state) {
	case model.StateDraft, model.StateSubmitted, model.StateApproved,
		model.StateCurrent, model.StateOutdated, model.StateRejected:
		return true
	}
	return false
}
