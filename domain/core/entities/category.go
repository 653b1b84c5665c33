package entities

import (
	pkgerrors "stockledger/pkg/errors"
)

// Category groups products and carries the derived total of their stock.
//
// TotalCount is a cache, not an authoritative value: it must equal the sum of
// Stock over all products whose CategoryID matches, and is only mutated
// through the aggregate-adjustment path driven by product operations.
type Category struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ImagePath  string `json:"imagePath"`
	TotalCount int64  `json:"totalCount"`
}

// NewCategory creates a category with an empty aggregate
func NewCategory(id int64, name, imagePath string) (*Category, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("category name cannot be empty")
	}

	return &Category{
		ID:         id,
		Name:       name,
		ImagePath:  imagePath,
		TotalCount: 0,
	}, nil
}

// ApplyStockDelta adjusts the aggregate total by delta, clamping at zero.
// A negative result is never allowed to persist.
func (c *Category) ApplyStockDelta(delta int64) {
	c.TotalCount += delta
	if c.TotalCount < 0 {
		c.TotalCount = 0
	}
}

// ResetTotal zeroes the aggregate. Used after a products-wide purge.
func (c *Category) ResetTotal() {
	c.TotalCount = 0
}
