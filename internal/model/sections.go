package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReviewType enum constants
const (
	ReviewTypeNewSolution = "NEW_SOLUTION"
	ReviewTypeMajorChange = "MAJOR_CHANGE"
	ReviewTypePeriodic    = "PERIODIC"
)

// Every section record carries a database-assigned UUID once persisted and,
// before that, an optional client-local ClientRef token assigned by the
// wizard when a row is appended. ClientRef is never stored: the column is
// excluded from the schema and the service zeroes client-sent IDs so the
// database assigns the final identity.

// BusinessCapability maps a review onto the three-level capability
// taxonomy. L1/L2/L3 are display labels from the taxonomy lookup.
type BusinessCapability struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef string    `gorm:"-" json:"client_ref,omitempty"`
	L1        string    `gorm:"type:varchar(255)" json:"l1_capability" validate:"required"`
	L2        string    `gorm:"type:varchar(255)" json:"l2_capability" validate:"required"`
	L3        string    `gorm:"type:varchar(255)" json:"l3_capability" validate:"required"`
	Remarks   string    `gorm:"type:text" json:"remarks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SecurityDetails is the security posture block of a SystemComponent,
// embedded with a column prefix rather than stored as a child table.
type SecurityDetails struct {
	AuthenticationMethod   string `gorm:"type:varchar(100)" json:"authentication_method"`
	AuthorizationModel     string `gorm:"type:varchar(100)" json:"authorization_model"`
	EncryptionAtRest       bool   `json:"encryption_at_rest"`
	EncryptionInTransit    bool   `json:"encryption_in_transit"`
	SecretsManagement      string `gorm:"type:varchar(100)" json:"secrets_management"`
	VulnerabilityScanning  string `gorm:"type:varchar(100)" json:"vulnerability_scanning"`
	PenTestFrequency       string `gorm:"type:varchar(50)" json:"pen_test_frequency"`
	DataMasking            bool   `json:"data_masking"`
	AuditLogging           bool   `json:"audit_logging"`
	NetworkSegmentation    string `gorm:"type:varchar(100)" json:"network_segmentation"`
	ComplianceAttestations string `gorm:"type:text" json:"compliance_attestations"`
}

// SystemComponent describes one deployable component of the solution.
// Changing HostedOn invalidates HostingRegion, which is re-selected from a
// filtered option set; the wizard enforces that reset.
type SystemComponent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef string    `gorm:"-" json:"client_ref,omitempty"`

	Name               string `gorm:"type:varchar(255)" json:"name" validate:"required"`
	Status             string `gorm:"type:varchar(50)" json:"status" validate:"required"`
	Role               string `gorm:"type:varchar(100)" json:"role"`
	HostedOn           string `gorm:"type:varchar(100)" json:"hosted_on"`
	HostingRegion      string `gorm:"type:varchar(100)" json:"hosting_region"`
	SolutionType       string `gorm:"type:varchar(100)" json:"solution_type"`
	LanguageFramework  string `gorm:"type:varchar(255)" json:"language_framework"`
	IsOwnedByUs        bool   `json:"is_owned_by_us"`
	IsCICDUsed         bool   `json:"is_cicd_used"`
	CustomizationLevel string `gorm:"type:varchar(50)" json:"customization_level"`
	UpgradeStrategy    string `gorm:"type:varchar(100)" json:"upgrade_strategy"`
	UpgradeFrequency   string `gorm:"type:varchar(50)" json:"upgrade_frequency"`
	IsSubscription     bool   `json:"is_subscription"`
	IsInternetFacing   bool   `json:"is_internet_facing"`

	// Availability is an SLA percentage such as 99.95.
	AvailabilityRequirement decimal.Decimal `gorm:"type:decimal(6,3)" json:"availability_requirement"`
	LatencyRequirement      string          `gorm:"type:varchar(50)" json:"latency_requirement"`
	ThroughputRequirement   string          `gorm:"type:varchar(50)" json:"throughput_requirement"`
	ScalabilityMethod       string          `gorm:"type:varchar(100)" json:"scalability_method"`
	BackupSite              string          `gorm:"type:varchar(100)" json:"backup_site"`

	Security SecurityDetails `gorm:"embedded;embeddedPrefix:security_" json:"security_details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TechnologyComponent is a catalog product the solution is built with.
type TechnologyComponent struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID       uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef      string    `gorm:"-" json:"client_ref,omitempty"`
	ComponentName  string    `gorm:"type:varchar(255)" json:"component_name" validate:"required"`
	ProductName    string    `gorm:"type:varchar(255)" json:"product_name" validate:"required"`
	ProductVersion string    `gorm:"type:varchar(50)" json:"product_version"`
	Usage          string    `gorm:"type:text" json:"usage" validate:"required"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IntegrationFlow records one integration between a component and a
// counterpart system.
type IntegrationFlow struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID              uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef             string    `gorm:"-" json:"client_ref,omitempty"`
	ComponentName         string    `gorm:"type:varchar(255)" json:"component_name" validate:"required"`
	CounterpartSystemCode string    `gorm:"type:varchar(50)" json:"counterpart_system_code" validate:"required"`
	CounterpartSystemRole string    `gorm:"type:varchar(50)" json:"counterpart_system_role"` // PROVIDER, CONSUMER
	IntegrationMethod     string    `gorm:"type:varchar(100)" json:"integration_method"`
	Middleware            string    `gorm:"type:varchar(100)" json:"middleware"`
	Frequency             string    `gorm:"type:varchar(50)" json:"frequency"`
	Purpose               string    `gorm:"type:text" json:"purpose"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DataAsset captures a data set a component owns or consumes.
type DataAsset struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID           uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef          string    `gorm:"-" json:"client_ref,omitempty"`
	ComponentName      string    `gorm:"type:varchar(255)" json:"component_name" validate:"required"`
	DataDomain         string    `gorm:"type:varchar(100)" json:"data_domain" validate:"required"`
	DataClassification string    `gorm:"type:varchar(50)" json:"data_classification"` // PUBLIC, INTERNAL, CONFIDENTIAL, RESTRICTED
	DataOwnedBy        string    `gorm:"type:varchar(255)" json:"data_owned_by"`
	DataEntities       []string  `gorm:"serializer:json;type:jsonb" json:"data_entities"`
	MasteredIn         string    `gorm:"type:varchar(255)" json:"mastered_in"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EnterpriseTool records the onboarding status of a mandated enterprise
// tool (monitoring, ITSM, scanning and the like).
type EnterpriseTool struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID           uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef          string    `gorm:"-" json:"client_ref,omitempty"`
	ToolName           string    `gorm:"type:varchar(255)" json:"tool_name" validate:"required"`
	ToolType           string    `gorm:"type:varchar(100)" json:"tool_type"`
	Onboarded          bool      `json:"onboarded"`
	IntegrationDetails string    `gorm:"type:text" json:"integration_details"`
	Issues             string    `gorm:"type:text" json:"issues"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProcessCompliance records adherence to a governed delivery process.
type ProcessCompliance struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReviewID    uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	ClientRef   string    `gorm:"-" json:"client_ref,omitempty"`
	ProcessName string    `gorm:"type:varchar(255)" json:"process_name" validate:"required"`
	Status      string    `gorm:"type:varchar(50)" json:"status" validate:"required"` // COMPLIANT, PARTIAL, NON_COMPLIANT, NOT_APPLICABLE
	Remarks     string    `gorm:"type:text" json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
