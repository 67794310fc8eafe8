package draft

import (
	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

// Per-section step constructors. Each wires the shared Step controller to
// the section's record type; sections with cascading field dependencies
// get a thin wrapper exposing field setters that enforce the reset rules.

// CapabilityStep edits the business capability list. L1/L2/L3 cascade:
// changing a higher level clears the levels below so they are re-selected
// from the filtered taxonomy options.
type CapabilityStep struct {
	*Step[model.BusinessCapability]
}

func NewCapabilityStep(seed []model.BusinessCapability, save SaveFunc[model.BusinessCapability]) *CapabilityStep {
	return &CapabilityStep{Step: newStep(seed, func(r *model.BusinessCapability) {
		r.ClientRef = nextClientRef()
	}, save)}
}

func (s *CapabilityStep) SetL1(v string) {
	s.UpdateDraft(func(r *model.BusinessCapability) {
		if r.L1 == v {
			return
		}
		r.L1 = v
		r.L2 = ""
		r.L3 = ""
	})
}

func (s *CapabilityStep) SetL2(v string) {
	s.UpdateDraft(func(r *model.BusinessCapability) {
		if r.L2 == v {
			return
		}
		r.L2 = v
		r.L3 = ""
	})
}

func (s *CapabilityStep) SetL3(v string) {
	s.UpdateDraft(func(r *model.BusinessCapability) { r.L3 = v })
}

func (s *CapabilityStep) SetRemarks(v string) {
	s.UpdateDraft(func(r *model.BusinessCapability) { r.Remarks = v })
}

// ComponentStep edits the system component list. The hosting region is
// scoped to the hosting platform, so changing HostedOn clears it.
type ComponentStep struct {
	*Step[model.SystemComponent]
}

func NewComponentStep(seed []model.SystemComponent, save SaveFunc[model.SystemComponent]) *ComponentStep {
	return &ComponentStep{Step: newStep(seed, func(r *model.SystemComponent) {
		r.ClientRef = nextClientRef()
	}, save)}
}

func (s *ComponentStep) SetHostedOn(v string) {
	s.UpdateDraft(func(r *model.SystemComponent) {
		if r.HostedOn == v {
			return
		}
		r.HostedOn = v
		r.HostingRegion = ""
	})
}

func (s *ComponentStep) SetHostingRegion(v string) {
	s.UpdateDraft(func(r *model.SystemComponent) { r.HostingRegion = v })
}

func NewTechnologyStep(seed []model.TechnologyComponent, save SaveFunc[model.TechnologyComponent]) *Step[model.TechnologyComponent] {
	return newStep(seed, func(r *model.TechnologyComponent) { r.ClientRef = nextClientRef() }, save)
}

func NewIntegrationStep(seed []model.IntegrationFlow, save SaveFunc[model.IntegrationFlow]) *Step[model.IntegrationFlow] {
	return newStep(seed, func(r *model.IntegrationFlow) { r.ClientRef = nextClientRef() }, save)
}

func NewDataAssetStep(seed []model.DataAsset, save SaveFunc[model.DataAsset]) *Step[model.DataAsset] {
	return newStep(seed, func(r *model.DataAsset) { r.ClientRef = nextClientRef() }, save)
}

func NewToolStep(seed []model.EnterpriseTool, save SaveFunc[model.EnterpriseTool]) *Step[model.EnterpriseTool] {
	return newStep(seed, func(r *model.EnterpriseTool) { r.ClientRef = nextClientRef() }, save)
}

func NewComplianceStep(seed []model.ProcessCompliance, save SaveFunc[model.ProcessCompliance]) *Step[model.ProcessCompliance] {
	return newStep(seed, func(r *model.ProcessCompliance) { r.ClientRef = nextClientRef() }, save)
}
