package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "stockledger/pkg/errors"
)

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct(1000, 1, "", "", 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewProduct(1000, 1, "cola", "", -1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	p, err := NewProduct(1000, 1, "cola", "/uploads/product/1_cola.png", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.ID)
	assert.Equal(t, int64(5), p.Stock)
}

func TestStockInDelta(t *testing.T) {
	p := &Product{Stock: 2}

	delta, err := p.StockIn(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), delta)
	assert.Equal(t, int64(5), p.Stock)

	for _, count := range []int64{0, -1} {
		_, err := p.StockIn(count)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	}
	assert.Equal(t, int64(5), p.Stock)
}

func TestStockOutDelta(t *testing.T) {
	p := &Product{Stock: 5}

	delta, err := p.StockOut(2)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), delta)
	assert.Equal(t, int64(3), p.Stock)

	// Exactly the remaining stock is allowed.
	delta, err = p.StockOut(3)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), delta)
	assert.Equal(t, int64(0), p.Stock)

	_, err = p.StockOut(1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInsufficientStock(err))

	_, err = p.StockOut(0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSetStockDelta(t *testing.T) {
	p := &Product{Stock: 4}

	delta, err := p.SetStock(10)
	require.NoError(t, err)
	assert.Equal(t, int64(6), delta)

	delta, err = p.SetStock(1)
	require.NoError(t, err)
	assert.Equal(t, int64(-9), delta)

	delta, err = p.SetStock(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), delta)

	_, err = p.SetStock(-5)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, int64(1), p.Stock)
}
