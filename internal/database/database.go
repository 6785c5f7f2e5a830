package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aiabusehotline/hotline-core/internal/config"
	"github.com/aiabusehotline/hotline-core/internal/models"
	"github.com/aiabusehotline/hotline-core/internal/responses"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for every persistent model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Report{},
		&models.AgentClient{},
		&models.ResponseTemplate{},
		&models.PartnerLead{},
		&models.SystemLog{},
	)
}

// SeedResponseTemplates inserts the built-in template catalog, skipping
// any template key that already exists so operator edits survive
// restarts.
func SeedResponseTemplates(db *gorm.DB) error {
	for _, tpl := range responses.Defaults() {
		var count int64
		if err := db.Model(&models.ResponseTemplate{}).
			Where("template_key = ?", tpl.TemplateKey).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check template %s: %w", tpl.TemplateKey, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&tpl).Error; err != nil {
			return fmt.Errorf("seed template %s: %w", tpl.TemplateKey, err)
		}
	}
	return nil
}

// LoadResponseTemplates returns the full template catalog.
func LoadResponseTemplates(db *gorm.DB) ([]models.ResponseTemplate, error) {
	var templates []models.ResponseTemplate
	if err := db.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("load response templates: %w", err)
	}
	return templates, nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
