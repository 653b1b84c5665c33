package di

import (
	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/application/services"
	"stockledger/infrastructure/config"
	"stockledger/infrastructure/persistence/assets"
	"stockledger/infrastructure/persistence/filestore"
	"stockledger/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Assets     *assets.Store
	Categories ports.CategoryRepository
	Products   ports.ProductRepository
	Catalog    *services.CatalogService
	Metrics    *observability.Collector
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideMetrics creates the Prometheus metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("stockledger")
}

// ProvideAssetStore creates the uploads store
func ProvideAssetStore(cfg *config.Config, logger *zap.Logger) (*assets.Store, error) {
	return assets.NewStore(cfg.UploadDir, logger)
}

// ProvideCategoryRepository creates the file-backed category store
func ProvideCategoryRepository(cfg *config.Config, assetStore *assets.Store, logger *zap.Logger) (ports.CategoryRepository, error) {
	return filestore.NewCategoryStore(cfg.DataDir, assetStore, logger)
}

// ProvideProductRepository creates the file-backed product store
func ProvideProductRepository(
	cfg *config.Config,
	categories ports.CategoryRepository,
	assetStore *assets.Store,
	logger *zap.Logger,
) (ports.ProductRepository, error) {
	return filestore.NewProductStore(cfg.DataDir, categories, assetStore, logger)
}

// ProvideCatalogService creates the cross-store orchestration service
func ProvideCatalogService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(categories, products, logger)
}
