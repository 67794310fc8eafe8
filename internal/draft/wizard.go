package draft

import (
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// Wizard is one authoring session: a draft buffer plus the step sequencer,
// created when the create/edit flow starts and discarded when it ends.
// Construct with NewWizard or EditWizard and call Close when the flow
// completes or is cancelled; a closed wizard refuses further writes.
type Wizard struct {
	buf    *Buffer
	seq    *Sequencer
	closed bool
}

// NewWizard starts the create-new flow for a system.
func NewWizard(systemCode string) *Wizard {
	return &Wizard{buf: NewBuffer(systemCode), seq: NewSequencer()}
}

// EditWizard starts the edit flow seeded from an existing review.
func EditWizard(r model.SolutionReview) *Wizard {
	return &Wizard{buf: FromReview(r), seq: NewSequencer()}
}

func (w *Wizard) Sequencer() *Sequencer { return w.seq }

// SaveOverview commits the overview step into the buffer.
func (w *Wizard) SaveOverview(o model.SolutionOverview) error {
	if w.closed {
		return errClosed()
	}
	w.buf.SetOverview(o)
	return nil
}

// SaveSection commits one section's record list into the buffer. Only the
// named section is replaced.
func (w *Wizard) SaveSection(s model.Section, records any) error {
	if w.closed {
		return errClosed()
	}
	return w.buf.ReplaceSection(s, records)
}

// Review returns a copy of the accumulated working copy.
func (w *Wizard) Review() model.SolutionReview { return w.buf.Snapshot() }

// Close ends the session. The buffer contents are dropped.
func (w *Wizard) Close() {
	w.closed = true
	w.buf = NewBuffer("")
}

func (w *Wizard) Closed() bool { return w.closed }

func errClosed() error {
	return apperror.Validation("wizard session is closed")
}
