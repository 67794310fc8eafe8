// Package draft implements the client-side authoring model for solution
// reviews: a per-session working copy accumulated section by section, the
// wizard step sequencer, and the per-section step controllers. Everything
// here is in-memory only; nothing persists until the owning flow pushes
// the accumulated review through the API client.
package draft

import (
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
)

// Buffer holds one working copy of a solution review for the duration of
// a wizard session. Sections are replaced wholesale, one at a time; a
// section save never touches the other sections. A Buffer belongs to a
// single session and is not shared across goroutines.
type Buffer struct {
	review model.SolutionReview
}

// NewBuffer starts an empty working copy for a brand-new review.
func NewBuffer(systemCode string) *Buffer {
	return &Buffer{review: model.SolutionReview{
		SystemCode:    systemCode,
		DocumentState: model.StateDraft,
	}}
}

// FromReview seeds a working copy from an existing review for the edit
// flow. The buffer copies the section slices so later edits never alias
// the caller's data.
func FromReview(r model.SolutionReview) *Buffer {
	b := &Buffer{review: r}
	b.review.BusinessCapabilities = cloneSlice(r.BusinessCapabilities)
	b.review.SystemComponents = cloneSlice(r.SystemComponents)
	b.review.TechnologyComponents = cloneSlice(r.TechnologyComponents)
	b.review.IntegrationFlows = cloneSlice(r.IntegrationFlows)
	b.review.DataAssets = cloneSlice(r.DataAssets)
	b.review.EnterpriseTools = cloneSlice(r.EnterpriseTools)
	b.review.ProcessCompliances = cloneSlice(r.ProcessCompliances)
	return b
}

// SetOverview replaces the solution overview block.
func (b *Buffer) SetOverview(o model.SolutionOverview) {
	b.review.Overview = o
}

// ReplaceSection swaps in a new record list for exactly one collection
// section. The payload type must match the section; anything else is a
// validation error and leaves the buffer untouched.
func (b *Buffer) ReplaceSection(s model.Section, records any) error {
	switch s {
	case model.SectionBusinessCapabilities:
		v, ok := records.([]model.BusinessCapability)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.BusinessCapabilities = cloneSlice(v)
	case model.SectionSystemComponents:
		v, ok := records.([]model.SystemComponent)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.SystemComponents = cloneSlice(v)
	case model.SectionTechnologyComponents:
		v, ok := records.([]model.TechnologyComponent)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.TechnologyComponents = cloneSlice(v)
	case model.SectionIntegrationFlows:
		v, ok := records.([]model.IntegrationFlow)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.IntegrationFlows = cloneSlice(v)
	case model.SectionDataAssets:
		v, ok := records.([]model.DataAsset)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.DataAssets = cloneSlice(v)
	case model.SectionEnterpriseTools:
		v, ok := records.([]model.EnterpriseTool)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.EnterpriseTools = cloneSlice(v)
	case model.SectionProcessCompliances:
		v, ok := records.([]model.ProcessCompliance)
		if !ok {
			return sectionTypeError(s)
		}
		b.review.ProcessCompliances = cloneSlice(v)
	default:
		return apperror.Validation("unknown section %q", s)
	}
	return nil
}

// Snapshot returns a copy of the accumulated review. Mutating the result
// does not affect the buffer.
func (b *Buffer) Snapshot() model.SolutionReview {
	r := b.review
	r.BusinessCapabilities = cloneSlice(b.review.BusinessCapabilities)
	r.SystemComponents = cloneSlice(b.review.SystemComponents)
	r.TechnologyComponents = cloneSlice(b.review.TechnologyComponents)
	r.IntegrationFlows = cloneSlice(b.review.IntegrationFlows)
	r.DataAssets = cloneSlice(b.review.DataAssets)
	r.EnterpriseTools = cloneSlice(b.review.EnterpriseTools)
	r.ProcessCompliances = cloneSlice(b.review.ProcessCompliances)
	return r
}

func sectionTypeError(s model.Section) error {
	return apperror.Validation("payload type does not match section %q", s)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
