package db

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sellerdesk/pkg/models"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Warn().Err(err).Msg("Could not create uuid-ossp extension")
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Warn().Err(err).Msg("Failed to create some custom indexes")
	}

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Full text search index for products
		`CREATE INDEX IF NOT EXISTS idx_products_search ON products USING gin(to_tsvector('english', coalesce(title, '') || ' ' || coalesce(group_sku, '') || ' ' || coalesce(sub_sku, '')))`,

		// Full listing SKU must stay unique across marketplaces
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_sku ON listings(marketplace_id, sku_prefix, sku_suffix) WHERE deleted_at IS NULL`,

		// One quantity row per sub SKU within a listing
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_listing_items_sub_sku ON listing_items(listing_id, sub_sku) WHERE deleted_at IS NULL`,

		// Low stock scans
		`CREATE INDEX IF NOT EXISTS idx_inventories_low_stock ON inventories((on_hand - reserved)) WHERE deleted_at IS NULL`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Warn().Err(err).Str("index", idx).Msg("Failed to create index")
		}
	}

	return nil
}

// SeedInitialData creates initial system data
func SeedInitialData(db *gorm.DB) error {
	log.Info().Msg("Seeding initial data...")

	var userCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}

	if userCount == 0 {
		password := os.Getenv("ADMIN_INITIAL_PASSWORD")
		if password == "" {
			password = "changeme"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		email := os.Getenv("ADMIN_INITIAL_EMAIL")
		if email == "" {
			email = "admin@localhost"
		}

		adminUser := models.User{
			Username: "admin",
			Email:    email,
			Password: string(hash),
			Role:     models.RoleAdmin,
			IsActive: true,
		}

		if err := db.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Info().Str("email", email).Msg("Admin user created")
	}

	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedInitialData(db); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
