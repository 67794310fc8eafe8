package draft

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// rowValidate checks the `validate` struct tags on section records. One
// shared instance; validator.Validate is safe for concurrent use.
var rowValidate = validator.New()

// SaveFunc receives the full current item list when a step is saved. The
// owning flow decides what to do with it (usually a Buffer.ReplaceSection
// followed by an API update).
type SaveFunc[T any] func(ctx context.Context, items []T) error

// Step is the controller behind one wizard section: the editable item
// list, the row currently being added or edited, and the edit cursor.
// AddOrCommit refuses invalid rows outright rather than relying on a
// disabled button in the UI.
type Step[T any] struct {
	items    []T
	editing  int // -1 when not editing
	draftRow T
	zero     T
	stampRef func(*T)
	save     SaveFunc[T]
}

func newStep[T any](seed []T, stampRef func(*T), save SaveFunc[T]) *Step[T] {
	return &Step[T]{
		items:    cloneSlice(seed),
		editing:  -1,
		stampRef: stampRef,
		save:     save,
	}
}

// Items returns a copy of the current list.
func (s *Step[T]) Items() []T { return cloneSlice(s.items) }

// Len returns the number of committed rows.
func (s *Step[T]) Len() int { return len(s.items) }

// Draft returns the row being added or edited.
func (s *Step[T]) Draft() T { return s.draftRow }

// UpdateDraft applies a field mutation to the draft row.
func (s *Step[T]) UpdateDraft(mutate func(*T)) { mutate(&s.draftRow) }

// Editing returns the index under edit, or -1.
func (s *Step[T]) Editing() int { return s.editing }

// AddOrCommit validates the draft row and either appends it (with a fresh
// client-local reference token) or, when an edit is in progress, replaces
// the row under edit. On a validation failure the item list is left
// exactly as it was. The draft row resets to the empty template afterward.
func (s *Step[T]) AddOrCommit() error {
	if err := rowValidate.Struct(s.draftRow); err != nil {
		return apperror.Wrap(apperror.KindValidation, err, "row has empty required fields")
	}
	if s.editing >= 0 {
		s.items[s.editing] = s.draftRow
		s.editing = -1
	} else {
		row := s.draftRow
		if s.stampRef != nil {
			s.stampRef(&row)
		}
		s.items = append(s.items, row)
	}
	s.draftRow = s.zero
	return nil
}

// StartEdit copies the row at index into the draft buffer and marks it as
// under edit.
func (s *Step[T]) StartEdit(index int) error {
	if index < 0 || index >= len(s.items) {
		return apperror.Validation("edit index %d out of range", index)
	}
	s.draftRow = s.items[index]
	s.editing = index
	return nil
}

// CancelEdit abandons the in-progress edit and resets the draft row.
func (s *Step[T]) CancelEdit() {
	s.editing = -1
	s.draftRow = s.zero
}

// Remove deletes the row at index unconditionally and re-indexes the rest.
// An edit in progress on that row is cancelled.
func (s *Step[T]) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return apperror.Validation("remove index %d out of range", index)
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	if s.editing == index {
		s.CancelEdit()
	} else if s.editing > index {
		s.editing--
	}
	return nil
}

// Reseed replaces the item list when the upstream data changes (the edit
// flow re-fetched the review, or the buffer was reset). Edit state is
// discarded.
func (s *Step[T]) Reseed(items []T) {
	s.items = cloneSlice(items)
	s.CancelEdit()
}

// Save pushes the full current list through the save callback. The list
// passed out is a copy, so a slow save never observes later edits.
func (s *Step[T]) Save(ctx context.Context) error {
	if s.save == nil {
		return nil
	}
	return s.save(ctx, cloneSlice(s.items))
}

// nextClientRef issues the temporary client-local identity for a freshly
// appended row. It is replaced by a database-assigned ID on persist and is
// never stored.
func nextClientRef() string {
	return fmt.Sprintf("tmp-%d", time.Now().UnixNano())
}
