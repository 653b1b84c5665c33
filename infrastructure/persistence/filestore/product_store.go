package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"stockledger/application/ports"
	"stockledger/domain/core/entities"
	"stockledger/infrastructure/persistence/assets"
	pkgerrors "stockledger/pkg/errors"
)

const (
	// productSeed is the first product identifier ever issued. Products draw
	// from their own namespace; the offset from category ids is convention,
	// not a requirement.
	productSeed = 1000

	partitionPrefix = "category_"
)

// ProductStore persists products as one JSON file per record, partitioned
// into one directory per owning category under <dataDir>/products. It holds a
// reference to the category side so every stock transition lands on the
// owning category's aggregate; the dependency never runs the other way.
type ProductStore struct {
	mu         sync.Mutex
	root       string
	alloc      *IDAllocator
	categories ports.CategoryRepository
	assets     *assets.Store
	logger     *zap.Logger
}

// NewProductStore creates the store, its root directory, and seeds the id
// allocator from every partition already on disk.
func NewProductStore(dataDir string, categories ports.CategoryRepository, assetStore *assets.Store, logger *zap.Logger) (*ProductStore, error) {
	root := filepath.Join(dataDir, "products")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, pkgerrors.NewStorageError("create products directory", err)
	}

	s := &ProductStore{
		root:       root,
		alloc:      NewIDAllocator(productSeed),
		categories: categories,
		assets:     assetStore,
		logger:     logger,
	}
	s.seedAllocator()
	return s, nil
}

func (s *ProductStore) seedAllocator() {
	for _, dir := range s.partitionDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if id, ok := parseRecordID(e.Name()); ok {
				s.alloc.Observe(id)
			}
		}
	}
}

// partitionDirs lists every category partition directory under the root
func (s *ProductStore) partitionDirs() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), partitionPrefix) {
			dirs = append(dirs, filepath.Join(s.root, e.Name()))
		}
	}
	return dirs
}

func (s *ProductStore) partitionDir(categoryID int64) string {
	return filepath.Join(s.root, partitionPrefix+strconv.FormatInt(categoryID, 10))
}

// Create persists a new product under its category partition. Verifying that
// the category exists and bumping its aggregate are the caller's job, in that
// order, so a failed write never leaves an orphaned aggregate adjustment.
func (s *ProductStore) Create(ctx context.Context, categoryID int64, name, imagePath string, stock int64) (*entities.Product, error) {
	p, err := entities.NewProduct(s.alloc.Next(), categoryID, name, imagePath, stock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.partitionDir(categoryID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.NewStorageError("create product partition", err)
	}
	if err := writeRecord(recordPath(dir, p.ID), p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID scans every partition, since the id alone does not say which
// category owns the product. Missing everywhere reports NotFound.
func (s *ProductStore) FindByID(ctx context.Context, id int64) (*entities.Product, error) {
	if p, _ := s.locate(id); p != nil {
		return p, nil
	}
	return nil, pkgerrors.NewNotFoundError("product")
}

// locate finds the product record and the partition directory holding it
func (s *ProductStore) locate(id int64) (*entities.Product, string) {
	for _, dir := range s.partitionDirs() {
		path := recordPath(dir, id)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var p entities.Product
		if readRecord(path, &p) {
			return &p, dir
		}
	}
	return nil, ""
}

// FindByCategory lists the products of one partition, sorted by id. A
// missing partition directory is an empty result, not an error.
func (s *ProductStore) FindByCategory(ctx context.Context, categoryID int64) ([]entities.Product, error) {
	out := s.readPartition(s.partitionDir(categoryID))
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindAll unions every partition, sorted by (categoryId, id) ascending. The
// ordering is a committed contract; consumers rely on it.
func (s *ProductStore) FindAll(ctx context.Context) ([]entities.Product, error) {
	var out []entities.Product
	for _, dir := range s.partitionDirs() {
		out = append(out, s.readPartition(dir)...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *ProductStore) readPartition(dir string) []entities.Product {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	out := make([]entities.Product, 0, len(entries))
	for _, e := range entries {
		if _, ok := parseRecordID(e.Name()); !ok {
			continue
		}
		var p entities.Product
		if !readRecord(filepath.Join(dir, e.Name()), &p) {
			s.logger.Warn("Skipping unreadable product record",
				zap.String("file", filepath.Join(dir, e.Name())),
			)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Update overwrites the record in place. When the product moved to another
// category, the record is written into the new partition and the stale file
// is removed from the old one, so no duplicate survives across partitions.
func (s *ProductStore) Update(ctx context.Context, p *entities.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(p)
}

func (s *ProductStore) writeLocked(p *entities.Product) error {
	dir := s.partitionDir(p.CategoryID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pkgerrors.NewStorageError("create product partition", err)
	}
	if err := writeRecord(recordPath(dir, p.ID), p); err != nil {
		return err
	}

	// Drop a stale copy left in another partition after a category move.
	for _, other := range s.partitionDirs() {
		if other == dir {
			continue
		}
		stale := recordPath(other, p.ID)
		if _, err := os.Stat(stale); err != nil {
			continue
		}
		if err := os.Remove(stale); err != nil {
			return pkgerrors.NewStorageError("remove relocated product record", err)
		}
		s.pruneEmptyPartition(other)
	}
	return nil
}

// StockIn increases the product's stock and the owning category's aggregate
func (s *ProductStore) StockIn(ctx context.Context, id, count int64) (*entities.Product, error) {
	return s.transition(ctx, id, "stock-in", func(p *entities.Product) (int64, error) {
		return p.StockIn(count)
	})
}

// StockOut decreases the product's stock, rejecting a request larger than
// the available stock, and reduces the owning category's aggregate.
func (s *ProductStore) StockOut(ctx context.Context, id, count int64) (*entities.Product, error) {
	return s.transition(ctx, id, "stock-out", func(p *entities.Product) (int64, error) {
		return p.StockOut(count)
	})
}

// SetStock replaces the product's stock and applies the signed delta to the
// owning category's aggregate.
func (s *ProductStore) SetStock(ctx context.Context, id, newStock int64) (*entities.Product, error) {
	return s.transition(ctx, id, "set-stock", func(p *entities.Product) (int64, error) {
		return p.SetStock(newStock)
	})
}

// transition runs one stock-changing operation: load the product, apply the
// mutation, persist the product first, then land the delta on the category.
// A category that vanished in between is a logged soft inconsistency, not a
// failure; the product-side change stays committed.
func (s *ProductStore) transition(ctx context.Context, id int64, op string, mutate func(*entities.Product) (int64, error)) (*entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, dir := s.locate(id)
	if p == nil {
		return nil, pkgerrors.NewNotFoundError("product")
	}

	delta, err := mutate(p)
	if err != nil {
		return nil, err
	}

	if err := writeRecord(recordPath(dir, p.ID), p); err != nil {
		return nil, pkgerrors.Wrapf(err, "%s product %d", op, id)
	}
	if delta != 0 {
		s.applyCategoryDelta(ctx, p.CategoryID, delta, op)
	}
	return p, nil
}

func (s *ProductStore) applyCategoryDelta(ctx context.Context, categoryID, delta int64, op string) {
	err := s.categories.AdjustTotal(ctx, categoryID, delta)
	if err == nil {
		return
	}
	if pkgerrors.IsNotFound(err) {
		s.logger.Warn("Owning category is gone, aggregate update skipped",
			zap.Int64("categoryID", categoryID),
			zap.Int64("delta", delta),
			zap.String("operation", op),
		)
		return
	}
	s.logger.Error("Category aggregate update failed",
		zap.Int64("categoryID", categoryID),
		zap.Int64("delta", delta),
		zap.String("operation", op),
		zap.Error(err),
	)
}

// Delete removes the product record, its asset, prunes the partition if it
// became empty, and reduces the owning category's aggregate by the deleted
// product's stock. This is the one transition the store cascades itself: it
// is the last point where the product's stock is known.
func (s *ProductStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, dir := s.locate(id)
	if p == nil {
		return false, nil
	}

	if err := os.Remove(recordPath(dir, id)); err != nil && !os.IsNotExist(err) {
		return false, pkgerrors.NewStorageError("delete product record", err)
	}
	if _, err := s.assets.Delete(p.ImagePath); err != nil {
		s.logger.Error("Product record deleted but asset removal failed",
			zap.Int64("productID", id),
			zap.String("imagePath", p.ImagePath),
			zap.Error(err),
		)
		return false, err
	}
	s.pruneEmptyPartition(dir)

	if p.Stock != 0 {
		s.applyCategoryDelta(ctx, p.CategoryID, -p.Stock, "delete")
	}
	return true, nil
}

// DeleteAll removes every product's asset, every partition directory, and
// resets the id allocator to its seed. Category totals are deliberately left
// alone; the caller zeroes them as the second phase of the purge.
func (s *ProductStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, dir := range s.partitionDirs() {
		for _, p := range s.readPartition(dir) {
			if _, err := s.assets.Delete(p.ImagePath); err != nil {
				s.logger.Error("Asset removal failed during product purge",
					zap.Int64("productID", p.ID),
					zap.Error(err),
				)
			}
		}
		if err := os.RemoveAll(dir); err != nil {
			return pkgerrors.NewStorageError(fmt.Sprintf("remove partition %s", filepath.Base(dir)), err)
		}
	}

	s.alloc.Reset()
	return nil
}

func (s *ProductStore) pruneEmptyPartition(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		s.logger.Debug("Could not prune empty partition", zap.String("dir", dir), zap.Error(err))
	}
}
