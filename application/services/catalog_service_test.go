package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockledger/infrastructure/persistence/assets"
	"stockledger/infrastructure/persistence/filestore"
	pkgerrors "stockledger/pkg/errors"
)

// newTestService wires the service against real file-backed stores over a
// temporary directory, so the cascades exercise the same code paths the
// running server does.
func newTestService(t *testing.T) (*CatalogService, *assets.Store) {
	t.Helper()
	root := t.TempDir()
	logger := zap.NewNop()

	assetStore, err := assets.NewStore(filepath.Join(root, "uploads"), logger)
	require.NoError(t, err)
	categories, err := filestore.NewCategoryStore(filepath.Join(root, "data"), assetStore, logger)
	require.NoError(t, err)
	products, err := filestore.NewProductStore(filepath.Join(root, "data"), categories, assetStore, logger)
	require.NoError(t, err)

	return NewCatalogService(categories, products, logger), assetStore
}

func TestCreateProductRequiresCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, 12345, "cola", "", 3)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateProductBumpsAggregate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "beverages", "")
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, c.ID, "cola", "", 4)
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, c.ID, "water", "", 6)
	require.NoError(t, err)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(10), list[0].TotalCount)
}

func TestDeleteCategoryCascades(t *testing.T) {
	svc, assetStore := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "beverages", "")
	require.NoError(t, err)
	keep, err := svc.CreateCategory(ctx, "snacks", "")
	require.NoError(t, err)

	ref, err := assetStore.Save("product", "cola.png", strings.NewReader("img"))
	require.NoError(t, err)
	doomed, err := svc.CreateProduct(ctx, c.ID, "cola", ref, 3)
	require.NoError(t, err)
	survivor, err := svc.CreateProduct(ctx, keep.ID, "chips", "", 5)
	require.NoError(t, err)

	deleted, err := svc.DeleteCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// The category, its products, and their assets are all gone.
	_, err = svc.GetProduct(ctx, doomed.ID)
	assert.True(t, pkgerrors.IsNotFound(err))
	_, statErr := os.Stat(assetStore.ResolvePath(ref))
	assert.True(t, os.IsNotExist(statErr))
	_, err = svc.ListProductsByCategory(ctx, c.ID)
	assert.True(t, pkgerrors.IsNotFound(err))

	// The other category is untouched.
	got, err := svc.GetProduct(ctx, survivor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
	assert.Equal(t, int64(5), list[0].TotalCount)
}

func TestDeleteCategoryMissingReportsFalse(t *testing.T) {
	svc, _ := newTestService(t)

	deleted, err := svc.DeleteCategory(context.Background(), 424242)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteAllCategoriesPurgesEverything(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "beverages", "")
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, c.ID, "cola", "", 3)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllCategories(ctx))

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	// Both id sequences restart at their seeds.
	c, err = svc.CreateCategory(ctx, "restarted", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	p, err := svc.CreateProduct(ctx, c.ID, "fresh", "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.ID)
}

func TestDeleteAllProductsZeroesAggregates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c1, err := svc.CreateCategory(ctx, "beverages", "")
	require.NoError(t, err)
	c2, err := svc.CreateCategory(ctx, "snacks", "")
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, c1.ID, "cola", "", 3)
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, c2.ID, "chips", "", 8)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllProducts(ctx))

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, int64(0), c.TotalCount)
	}
}

func TestStockMovementsThroughService(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "beverages", "")
	require.NoError(t, err)
	p, err := svc.CreateProduct(ctx, c.ID, "cola", "", 2)
	require.NoError(t, err)

	got, err := svc.StockIn(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)

	got, err = svc.StockOut(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock)

	got, err = svc.SetStock(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Stock)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(10), list[0].TotalCount)
}

func TestListProductsByCategoryRequiresCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListProductsByCategory(context.Background(), 5555)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
