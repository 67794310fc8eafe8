package model

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityTaxonomyEntry is one leaf of the three-level business
// capability taxonomy. The cascade filters in the lookup service join on
// the exact display labels, case-sensitive.
type CapabilityTaxonomyEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	L1        string    `gorm:"type:varchar(255);not null;index" json:"l1"`
	L2        string    `gorm:"type:varchar(255);not null" json:"l2"`
	L3        string    `gorm:"type:varchar(255);not null" json:"l3"`
	CreatedAt time.Time `json:"created_at"`
}

// TechCatalogEntry is one product/version row of the technology component
// catalog.
type TechCatalogEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductName    string    `gorm:"type:varchar(255);not null;index" json:"product_name"`
	ProductVersion string    `gorm:"type:varchar(50);not null" json:"product_version"`
	Category       string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}
