package draft

import (
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// Sequencer tracks the current position over the ordered wizard steps.
// Next and Prev saturate at the bounds; GoTo allows an arbitrary jump (the
// step indicator in the UI permits skipping ahead) but rejects an index
// outside the step list. The sequencer has no side effects and persists
// nothing.
type Sequencer struct {
	steps []model.Section
	index int
}

// NewSequencer starts at the first of the given steps. With no arguments
// it walks model.WizardSections.
func NewSequencer(steps ...model.Section) *Sequencer {
	if len(steps) == 0 {
		steps = model.WizardSections
	}
	return &Sequencer{steps: steps}
}

// Next advances one step and reports whether the index moved.
func (s *Sequencer) Next() bool {
	if s.index >= len(s.steps)-1 {
		return false
	}
	s.index++
	return true
}

// Prev steps back and reports whether the index moved.
func (s *Sequencer) Prev() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// GoTo jumps directly to a step index.
func (s *Sequencer) GoTo(index int) error {
	if index < 0 || index >= len(s.steps) {
		return apperror.Validation("step index %d out of range [0,%d)", index, len(s.steps))
	}
	s.index = index
	return nil
}

// Current returns the section the wizard is on.
func (s *Sequencer) Current() model.Section { return s.steps[s.index] }

func (s *Sequencer) Index() int    { return s.index }
func (s *Sequencer) Len() int      { return len(s.steps) }
func (s *Sequencer) IsFirst() bool { return s.index == 0 }
func (s *Sequencer) IsLast() bool  { return s.index == len(s.steps)-1 }
