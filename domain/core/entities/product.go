package entities

import (
	pkgerrors "stockledger/pkg/errors"
)

// Product is a stock-bearing record owned by exactly one category.
type Product struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	ImagePath  string `json:"imagePath"`
	Stock      int64  `json:"stock"`
}

// NewProduct creates a product bound to a category
func NewProduct(id, categoryID int64, name, imagePath string, stock int64) (*Product, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("product name cannot be empty")
	}
	if stock < 0 {
		return nil, pkgerrors.NewValidationError("initial stock cannot be negative")
	}

	return &Product{
		ID:         id,
		CategoryID: categoryID,
		Name:       name,
		ImagePath:  imagePath,
		Stock:      stock,
	}, nil
}

// StockIn increases stock by count and returns the aggregate delta
func (p *Product) StockIn(count int64) (int64, error) {
	if count <= 0 {
		return 0, pkgerrors.NewValidationError("inbound count must be greater than zero")
	}
	p.Stock += count
	return count, nil
}

// StockOut decreases stock by count and returns the aggregate delta.
// Stock never goes negative; an oversized request is rejected whole.
func (p *Product) StockOut(count int64) (int64, error) {
	if count <= 0 {
		return 0, pkgerrors.NewValidationError("outbound count must be greater than zero")
	}
	if p.Stock < count {
		return 0, pkgerrors.NewInsufficientStockError(p.Stock, count)
	}
	p.Stock -= count
	return -count, nil
}

// SetStock replaces stock with newStock and returns the aggregate delta
func (p *Product) SetStock(newStock int64) (int64, error) {
	if newStock < 0 {
		return 0, pkgerrors.NewValidationError("stock cannot be negative")
	}
	delta := newStock - p.Stock
	p.Stock = newStock
	return delta, nil
}
