package app

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"sellerdesk/internal/auth"
	"sellerdesk/internal/repo"
	"sellerdesk/internal/services"
)

// Services holds all application services
type Services struct {
	DB              *gorm.DB
	AuthService     *auth.Service
	UserRepo        *repo.UserRepository
	BrandRepo       *repo.BrandRepository
	MarketplaceRepo *repo.MarketplaceRepository
	ShippingRepo    *repo.ShippingRepository
	ProductRepo     *repo.ProductRepository
	ListingRepo     *repo.ListingRepository
	InventoryRepo   *repo.InventoryRepository
	SettingsRepo    *repo.SettingsRepository
	ImportJobRepo   *repo.ImportJobRepository
	Importer        *services.ImporterService
	Storage         *services.StorageService
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	userRepo := repo.NewUserRepository(db)
	brandRepo := repo.NewBrandRepository(db)
	marketplaceRepo := repo.NewMarketplaceRepository(db)
	shippingRepo := repo.NewShippingRepository(db)
	productRepo := repo.NewProductRepository(db)
	listingRepo := repo.NewListingRepository(db)
	inventoryRepo := repo.NewInventoryRepository(db)
	settingsRepo := repo.NewSettingsRepository(db)
	importJobRepo := repo.NewImportJobRepository(db)

	authService := auth.NewService(userRepo)
	importer := services.NewImporterService(importJobRepo, productRepo, brandRepo)

	// Storage is optional in development; upload endpoints fail gracefully
	storage, err := services.NewStorageService()
	if err != nil {
		log.Warn().Err(err).Msg("storage service disabled")
	}

	return &Services{
		DB:              db,
		AuthService:     authService,
		UserRepo:        userRepo,
		BrandRepo:       brandRepo,
		MarketplaceRepo: marketplaceRepo,
		ShippingRepo:    shippingRepo,
		ProductRepo:     productRepo,
		ListingRepo:     listingRepo,
		InventoryRepo:   inventoryRepo,
		SettingsRepo:    settingsRepo,
		ImportJobRepo:   importJobRepo,
		Importer:        importer,
		Storage:         storage,
	}
}
