package database

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/concilia-retail/concilia-api/internal/config"
	"github.com/concilia-retail/concilia-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Operators
		&entity.User{},

		// Reconciliation entities
		&entity.FiscalRecord{},
		&entity.ResolutionRecord{},

		// Ledger and receivables
		&entity.LedgerEvent{},
		&entity.Receivable{},
		&entity.Settlement{},

		// Commissions and vendors
		&entity.Vendor{},
		&entity.Commission{},

		// Closing lifecycle
		&entity.ClosingPeriod{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the reserved system vendors and, when configured, the
// initial admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Reserved vendors used by resolution actions; never eligible for commission
	reserved := []entity.Vendor{
		{Code: entity.VendorIndefinido, Name: "Vendedor indefinido", CommissionPercentage: decimal.Zero, Active: true},
		{Code: entity.VendorLoja, Name: "Loja (perdas absorvidas)", CommissionPercentage: decimal.Zero, Active: true},
		{Code: entity.VendorEstornado, Name: "Estornado", CommissionPercentage: decimal.Zero, Active: true},
	}
	for i := range reserved {
		var existing entity.Vendor
		if err := db.Where("code = ?", reserved[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&reserved[i]).Error; err != nil {
				log.Printf("Warning: failed to create system vendor %s: %v", reserved[i].Code, err)
			}
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				adminUser := entity.User{
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     entity.RoleAdmin,
					Provider: "local",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
