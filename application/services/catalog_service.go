package services

import (
	"context"

	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/domain/core/entities"
	pkgerrors "stockledger/pkg/errors"
)

// CatalogService orchestrates the operations that span both record
// collections: creating a product against an existing category, the category
// delete cascade, and the two-phase purges. Single-collection operations pass
// straight through to the stores.
type CatalogService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	logger     *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categories ports.CategoryRepository,
	products ports.ProductRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// CreateCategory persists a new category
func (s *CatalogService) CreateCategory(ctx context.Context, name, imagePath string) (*entities.Category, error) {
	return s.categories.Create(ctx, name, imagePath)
}

// ListCategories returns every category, ordered by id
func (s *CatalogService) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return s.categories.FindAll(ctx)
}

// DeleteCategory removes a category together with its products and their
// assets. Products go first: deleting each one settles its aggregate
// adjustment while the category still exists, then the category record and
// asset follow. Reports false when the category does not exist.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	productList, err := s.products.FindByCategory(ctx, id)
	if err != nil {
		return false, err
	}
	for _, p := range productList {
		if _, err := s.products.Delete(ctx, p.ID); err != nil {
			return false, pkgerrors.Wrapf(err, "cascade delete of product %d", p.ID)
		}
	}

	return s.categories.Delete(ctx, id)
}

// DeleteAllCategories purges both collections: every product with its assets
// and partitions first, then every category. Both id allocators return to
// their seeds. Destructive and irreversible.
func (s *CatalogService) DeleteAllCategories(ctx context.Context) error {
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}
	return s.categories.DeleteAll(ctx)
}

// CreateProduct validates that the owning category exists, persists the
// product, then bumps the category aggregate by the initial stock. The
// ordering is mandatory: a product is never written against a category that
// was not seen to exist.
func (s *CatalogService) CreateProduct(ctx context.Context, categoryID int64, name, imagePath string, stock int64) (*entities.Product, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	p, err := s.products.Create(ctx, categoryID, name, imagePath, stock)
	if err != nil {
		return nil, err
	}

	if stock != 0 {
		if err := s.categories.AdjustTotal(ctx, categoryID, stock); err != nil {
			// The product is committed; a failed aggregate bump is the same
			// soft inconsistency as a vanished category on a stock transition.
			s.logger.Warn("Aggregate bump after product create failed",
				zap.Int64("categoryID", categoryID),
				zap.Int64("productID", p.ID),
				zap.Error(err),
			)
		}
	}
	return p, nil
}

// GetProduct returns one product by id
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entities.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ListProducts returns every product, ordered by (categoryId, id)
func (s *CatalogService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.products.FindAll(ctx)
}

// ListProductsByCategory returns the products of one category, requiring the
// category to exist.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]entities.Product, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.products.FindByCategory(ctx, categoryID)
}

// StockIn records an inbound stock movement
func (s *CatalogService) StockIn(ctx context.Context, productID, count int64) (*entities.Product, error) {
	return s.products.StockIn(ctx, productID, count)
}

// StockOut records an outbound stock movement
func (s *CatalogService) StockOut(ctx context.Context, productID, count int64) (*entities.Product, error) {
	return s.products.StockOut(ctx, productID, count)
}

// SetStock replaces a product's stock level
func (s *CatalogService) SetStock(ctx context.Context, productID, newStock int64) (*entities.Product, error) {
	return s.products.SetStock(ctx, productID, newStock)
}

// DeleteProduct removes one product, cascading the aggregate decrement
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return s.products.Delete(ctx, id)
}

// DeleteAllProducts purges the product collection and then zeroes every
// surviving category's aggregate as the second phase, so no category keeps a
// total for stock that no longer exists.
func (s *CatalogService) DeleteAllProducts(ctx context.Context) error {
	if err := s.products.DeleteAll(ctx); err != nil {
		return err
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		c := categories[i]
		if c.TotalCount == 0 {
			continue
		}
		c.ResetTotal()
		if err := s.categories.Update(ctx, &c); err != nil {
			return pkgerrors.Wrapf(err, "zero aggregate of category %d", c.ID)
		}
	}
	return nil
}
