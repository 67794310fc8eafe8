package database

import (
	"log"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.System{},
		&model.SolutionReview{},
		&model.BusinessCapability{},
		&model.SystemComponent{},
		&model.TechnologyComponent{},
		&model.IntegrationFlow{},
		&model.DataAsset{},
		&model.EnterpriseTool{},
		&model.ProcessCompliance{},
		&model.CapabilityTaxonomyEntry{},
		&model.TechCatalogEntry{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
