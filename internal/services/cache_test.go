package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/store"
)

func TestProductCacheServesRepeatJoins(t *testing.T) {
	ms := newMockStore()
	cache := newMemCache()

	ms.Tables[ordersTable].On("Find", mock.Anything, "recOrd1").
		Return(orderRecord("recOrd1", "recProd1", "jo@example.com", 1, "pending"), nil)
	// The product is fetched from the store exactly once; the second join is
	// a cache hit.
	ms.Tables[productsTable].On("Find", mock.Anything, "recProd1").
		Return(productRecord("recProd1", "Widget", "A widget", 9.99), nil).Once()

	svc := NewOrderService(ms, nil)
	svc.SetProductCache(cache)

	for i := 0; i < 2; i++ {
		o, err := svc.Get(context.Background(), "recOrd1")
		require.NoError(t, err)
		require.NotNil(t, o.Product)
		assert.Equal(t, "Widget", o.Product.Name)
	}
	assert.Contains(t, cache.entries, productCacheKey("recProd1"))
	ms.Tables[productsTable].AssertExpectations(t)
}

func TestProductUpdateInvalidatesJoinCache(t *testing.T) {
	ms := newMockStore()
	cache := newMemCache()

	orders := ms.Tables[ordersTable]
	products := ms.Tables[productsTable]

	orders.On("Find", mock.Anything, "recOrd1").
		Return(orderRecord("recOrd1", "recProd1", "jo@example.com", 1, "pending"), nil)
	products.On("Find", mock.Anything, "recProd1").
		Return(productRecord("recProd1", "Widget", "A widget", 9.99), nil).Once()

	orderSvc := NewOrderService(ms, nil)
	orderSvc.SetProductCache(cache)
	catalogSvc := NewCatalogService(ms)
	catalogSvc.SetProductCache(cache)

	// Warm the cache through the join.
	o, err := orderSvc.Get(context.Background(), "recOrd1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", o.Product.Name)

	// Edit the product; the cached copy must be dropped.
	products.On("Update", mock.Anything, "recProd1", mock.Anything).
		Return(productRecord("recProd1", "Widget XL", "A bigger widget", 14.99), nil)
	_, err = catalogSvc.Update(context.Background(), "recProd1",
		ProductInput{Name: "Widget XL", Description: "A bigger widget", Price: "14.99", ImageURL: "http://x/y.png"})
	require.NoError(t, err)
	assert.Contains(t, cache.deleted, productCacheKey("recProd1"))

	// The next join re-reads the store and sees the edit, not the snapshot.
	products.On("Find", mock.Anything, "recProd1").
		Return(productRecord("recProd1", "Widget XL", "A bigger widget", 14.99), nil).Once()
	o, err = orderSvc.Get(context.Background(), "recOrd1")
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", o.Product.Name)
	assert.Equal(t, 14.99, o.Product.Price)
}

func TestProductDeleteInvalidatesJoinCache(t *testing.T) {
	ms := newMockStore()
	cache := newMemCache()

	orders := ms.Tables[ordersTable]
	products := ms.Tables[productsTable]

	orders.On("Find", mock.Anything, "recOrd1").
		Return(orderRecord("recOrd1", "recProd1", "jo@example.com", 1, "pending"), nil)
	products.On("Find", mock.Anything, "recProd1").
		Return(productRecord("recProd1", "Widget", "A widget", 9.99), nil).Once()

	orderSvc := NewOrderService(ms, nil)
	orderSvc.SetProductCache(cache)
	catalogSvc := NewCatalogService(ms)
	catalogSvc.SetProductCache(cache)

	_, err := orderSvc.Get(context.Background(), "recOrd1")
	require.NoError(t, err)

	products.On("Destroy", mock.Anything, "recProd1").Return(nil)
	require.NoError(t, catalogSvc.Delete(context.Background(), "recProd1"))
	assert.Contains(t, cache.deleted, productCacheKey("recProd1"))

	// The deleted product no longer renders as present: the join re-reads
	// the store and marks the order.
	products.On("Find", mock.Anything, "recProd1").
		Return(store.Record{}, store.ErrRecordNotFound).Once()
	o, err := orderSvc.Get(context.Background(), "recOrd1")
	require.NoError(t, err)
	assert.Nil(t, o.Product)
	assert.True(t, o.ProductUnavailable)
}
