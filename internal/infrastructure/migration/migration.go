package migration

import (
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"klippa/internal/infrastructure/persistence/models"
	"klippa/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a new migration manager. Development environments
// use gorm AutoMigrate; everything else runs the versioned goose scripts.
func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "development", "dev":
		strategy = NewGormAutoMigrateStrategy()
	default:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGooseStrategy(scriptsPath)
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, modelList ...interface{}) error {
	if len(modelList) == 0 {
		modelList = AutoMigrateModels()
	}

	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(modelList))

	if err := m.strategy.Migrate(db, modelList...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return err
	}

	m.logger.Infow("migration completed",
		"strategy", m.strategy.GetName())
	return nil
}

// AutoMigrateModels returns the persistence models in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.VendorModel{},
		&models.UserModel{},
		&models.CouponModel{},
		&models.ClaimRecordModel{},
	}
}
