package ports

import (
	"context"
	"io"

	"stockledger/domain/core/entities"
)

// CategoryRepository defines the interface for category persistence.
// This is a port in hexagonal architecture - the application layer doesn't
// know about the file-backed implementation.
type CategoryRepository interface {
	// Create allocates an id and persists a new category with a zero total
	Create(ctx context.Context, name, imagePath string) (*entities.Category, error)

	// FindByID retrieves one category; missing or unreadable reports NotFound
	FindByID(ctx context.Context, id int64) (*entities.Category, error)

	// FindAll retrieves every category, ordered by id
	FindAll(ctx context.Context) ([]entities.Category, error)

	// Update overwrites the stored record in full
	Update(ctx context.Context, c *entities.Category) error

	// AdjustTotal applies a stock delta to the aggregate, clamped at zero
	AdjustTotal(ctx context.Context, id, delta int64) error

	// Delete removes the category record and its asset; false when absent
	Delete(ctx context.Context, id int64) (bool, error)

	// DeleteAll purges the collection and resets the id allocator
	DeleteAll(ctx context.Context) error
}

// ProductRepository defines the interface for product persistence and the
// stock transitions that keep the owning category's aggregate consistent.
type ProductRepository interface {
	// Create persists a new product in its category partition. The caller must
	// have verified the category exists and must apply the aggregate bump.
	Create(ctx context.Context, categoryID int64, name, imagePath string, stock int64) (*entities.Product, error)

	// FindByID scans every partition for the product
	FindByID(ctx context.Context, id int64) (*entities.Product, error)

	// FindByCategory lists one partition; a missing partition is an empty list
	FindByCategory(ctx context.Context, categoryID int64) ([]entities.Product, error)

	// FindAll lists every partition, ordered by (categoryId, id)
	FindAll(ctx context.Context) ([]entities.Product, error)

	// Update overwrites the record, relocating it when the category changed
	Update(ctx context.Context, p *entities.Product) error

	// StockIn increases stock by count and bumps the category aggregate
	StockIn(ctx context.Context, id, count int64) (*entities.Product, error)

	// StockOut decreases stock by count and reduces the category aggregate
	StockOut(ctx context.Context, id, count int64) (*entities.Product, error)

	// SetStock replaces stock and applies the delta to the category aggregate
	SetStock(ctx context.Context, id, newStock int64) (*entities.Product, error)

	// Delete removes the record, its asset, and reduces the owning category's
	// aggregate by the product's last known stock; false when absent
	Delete(ctx context.Context, id int64) (bool, error)

	// DeleteAll purges every partition and resets the id allocator. Category
	// totals are untouched; the caller zeroes them separately.
	DeleteAll(ctx context.Context) error
}

// AssetStore defines the interface for uploaded binary assets
type AssetStore interface {
	// Save stores the payload and returns a root-relative reference
	Save(collection, originalName string, payload io.Reader) (string, error)

	// ResolvePath maps a reference back to a local file path, "" if it cannot
	ResolvePath(reference string) string

	// Delete removes the asset; true only when a file existed and was removed
	Delete(reference string) (bool, error)
}
