package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentState enum constants. DRAFT, SUBMITTED, CURRENT and OUTDATED are
// the canonical lifecycle; APPROVED and REJECTED are reached through the
// approval flow. "ACTIVE" is a legacy label for CURRENT and is normalized
// on parse.
const (
	StateDraft     = "DRAFT"
	StateSubmitted = "SUBMITTED"
	StateApproved  = "APPROVED"
	StateCurrent   = "CURRENT"
	StateOutdated  = "OUTDATED"
	StateRejected  = "REJECTED"
)

// Section names the sub-collections of a SolutionReview. The order of
// WizardSections is the order the authoring wizard walks them in.
type Section string

const (
	SectionSolutionOverview     Section = "solutionOverview"
	SectionBusinessCapabilities Section = "businessCapabilities"
	SectionSystemComponents     Section = "systemComponents"
	SectionTechnologyComponents Section = "technologyComponents"
	SectionIntegrationFlows     Section = "integrationFlows"
	SectionDataAssets           Section = "dataAssets"
	SectionEnterpriseTools      Section = "enterpriseTools"
	SectionProcessCompliances   Section = "processCompliances"
)

// WizardSections is the fixed step order of the authoring wizard.
var WizardSections = []Section{
	SectionSolutionOverview,
	SectionBusinessCapabilities,
	SectionSystemComponents,
	SectionTechnologyComponents,
	SectionIntegrationFlows,
	SectionDataAssets,
	SectionEnterpriseTools,
	SectionProcessCompliances,
}

// SolutionOverview holds the identity block of a review. Stored embedded in
// the solution_reviews row rather than as a child table.
type SolutionOverview struct {
	SolutionName     string   `gorm:"type:varchar(255)" json:"solution_name"`
	ReviewType       string   `gorm:"type:varchar(50)" json:"review_type"` // NEW_SOLUTION, MAJOR_CHANGE, PERIODIC
	BusinessUnit     string   `gorm:"type:varchar(255)" json:"business_unit"`
	BusinessDriver   string   `gorm:"type:text" json:"business_driver"`
	ValueOutcome     string   `gorm:"type:text" json:"value_outcome"`
	ApplicationUsers []string `gorm:"serializer:json;type:jsonb" json:"application_users"`
	Concerns         []string `gorm:"serializer:json;type:jsonb" json:"concerns"`
}

// SolutionReview is the aggregate architecture/governance record for one
// system. DocumentState only ever changes through a named transition.
type SolutionReview struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SystemCode    string           `gorm:"type:varchar(50);not null;index" json:"system_code"` // immutable after creation
	DocumentState string           `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"document_state"`
	Overview      SolutionOverview `gorm:"embedded;embeddedPrefix:overview_" json:"solution_overview"`

	BusinessCapabilities []BusinessCapability  `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"business_capabilities"`
	SystemComponents     []SystemComponent     `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"system_components"`
	TechnologyComponents []TechnologyComponent `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"technology_components"`
	IntegrationFlows     []IntegrationFlow     `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"integration_flows"`
	DataAssets           []DataAsset           `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"data_assets"`
	EnterpriseTools      []EnterpriseTool      `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"enterprise_tools"`
	ProcessCompliances   []ProcessCompliance   `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"process_compliances"`

	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedBy      string         `gorm:"type:varchar(255)" json:"created_by"`
	LastModifiedBy string         `gorm:"type:varchar(255)" json:"last_modified_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"last_modified_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// SectionLen returns the record count of a named collection section.
// SectionSolutionOverview has no count and reports 0.
func (r *SolutionReview) SectionLen(s Section) int {
	switch s {
	case SectionBusinessCapabilities:
		return len(r.BusinessCapabilities)
	case SectionSystemComponents:
		return len(r.SystemComponents)
	case SectionTechnologyComponents:
		return len(r.TechnologyComponents)
	case SectionIntegrationFlows:
		return len(r.IntegrationFlows)
	case SectionDataAssets:
		return len(r.DataAssets)
	case SectionEnterpriseTools:
		return len(r.EnterpriseTools)
	case SectionProcessCompliances:
		return len(r.ProcessCompliances)
	default:
		return 0
	}
}

// System is a registry entry for a software system that reviews are
// authored against.
type System struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SystemCode  string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"system_code"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerTeam   string         `gorm:"type:varchar(255)" json:"owner_team"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
