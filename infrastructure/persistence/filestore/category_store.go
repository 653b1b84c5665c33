package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"stockledger/domain/core/entities"
	"stockledger/infrastructure/persistence/assets"
	pkgerrors "stockledger/pkg/errors"
)

// categorySeed is the first category identifier ever issued.
const categorySeed = 1

// CategoryStore persists categories as one JSON file per record under
// <dataDir>/categories. A store-wide mutex serializes mutations so a
// concurrent update and delete of the same record cannot interleave; reads
// always go back to disk, the file is the source of truth.
type CategoryStore struct {
	mu     sync.Mutex
	dir    string
	alloc  *IDAllocator
	assets *assets.Store
	logger *zap.Logger
}

// NewCategoryStore creates the store, its directory, and seeds the id
// allocator from the records already on disk.
func NewCategoryStore(dataDir string, assetStore *assets.Store, logger *zap.Logger) (*CategoryStore, error) {
	dir := filepath.Join(dataDir, "categories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.NewStorageError("create categories directory", err)
	}

	s := &CategoryStore{
		dir:    dir,
		alloc:  NewIDAllocator(categorySeed),
		assets: assetStore,
		logger: logger,
	}
	s.seedAllocator()
	return s, nil
}

func (s *CategoryStore) seedAllocator() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if id, ok := parseRecordID(e.Name()); ok {
			s.alloc.Observe(id)
		}
	}
}

// Create allocates an identifier and persists a new category with an empty
// aggregate total.
func (s *CategoryStore) Create(ctx context.Context, name, imagePath string) (*entities.Category, error) {
	c, err := entities.NewCategory(s.alloc.Next(), name, imagePath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeRecord(recordPath(s.dir, c.ID), c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByID reads the one record file for id. A missing or unreadable record
// reports NotFound, never a storage failure.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*entities.Category, error) {
	var c entities.Category
	if !readRecord(recordPath(s.dir, id), &c) {
		return nil, pkgerrors.NewNotFoundError("category")
	}
	return &c, nil
}

// FindAll lists every category, sorted by id. Corrupt record files are
// skipped and logged so one bad file cannot break the listing.
func (s *CategoryStore) FindAll(ctx context.Context) ([]entities.Category, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list categories", err)
	}

	out := make([]entities.Category, 0, len(entries))
	for _, e := range entries {
		if _, ok := parseRecordID(e.Name()); !ok {
			continue
		}
		var c entities.Category
		if !readRecord(filepath.Join(s.dir, e.Name()), &c) {
			s.logger.Warn("Skipping unreadable category record", zap.String("file", e.Name()))
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update overwrites the record file in full, last write wins
func (s *CategoryStore) Update(ctx context.Context, c *entities.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeRecord(recordPath(s.dir, c.ID), c)
}

// AdjustTotal applies a stock delta to the category aggregate, clamped at
// zero. Reports NotFound when the category record is gone; callers on the
// product side treat that as a soft inconsistency.
func (s *CategoryStore) AdjustTotal(ctx context.Context, id, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c entities.Category
	if !readRecord(recordPath(s.dir, id), &c) {
		return pkgerrors.NewNotFoundError("category")
	}
	c.ApplyStockDelta(delta)
	return writeRecord(recordPath(s.dir, id), &c)
}

// Delete removes the category record and its asset. Reports false when no
// such category exists. It does not cascade to products; that orchestration
// belongs one level up, since this store must not depend on the product side.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c entities.Category
	if !readRecord(recordPath(s.dir, id), &c) {
		return false, nil
	}

	if err := os.Remove(recordPath(s.dir, id)); err != nil && !os.IsNotExist(err) {
		return false, pkgerrors.NewStorageError("delete category record", err)
	}
	if _, err := s.assets.Delete(c.ImagePath); err != nil {
		s.logger.Error("Category record deleted but asset removal failed",
			zap.Int64("categoryID", id),
			zap.String("imagePath", c.ImagePath),
			zap.Error(err),
		)
		return false, err
	}
	return true, nil
}

// DeleteAll removes every category record and asset, then resets the id
// allocator to its seed. This is a destructive, irreversible purge of the
// whole collection's identity space, unlike individual deletes.
func (s *CategoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return pkgerrors.NewStorageError("list categories", err)
	}

	for _, e := range entries {
		if _, ok := parseRecordID(e.Name()); !ok {
			continue
		}
		path := filepath.Join(s.dir, e.Name())

		var c entities.Category
		if readRecord(path, &c) {
			if _, err := s.assets.Delete(c.ImagePath); err != nil {
				s.logger.Error("Asset removal failed during category purge",
					zap.Int64("categoryID", c.ID),
					zap.Error(err),
				)
			}
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return pkgerrors.NewStorageError("delete category record", err)
		}
	}

	s.alloc.Reset()
	return nil
}
