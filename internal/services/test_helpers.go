package services

import (
	"context"
	"errors"
	"time"

	"storefront/internal/mocks"
	"storefront/internal/store"
)

func newMockStore() *mocks.MockStore {
	return mocks.NewMockStore(productsTable, ordersTable)
}

// memCache is an in-process ProductCache for tests.
type memCache struct {
	entries map[string]string
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.entries[key] = value
}

func (c *memCache) Del(ctx context.Context, key string) {
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
}

var _ ProductCache = (*memCache)(nil)

func productRecord(id, name, description string, price float64) store.Record {
	return store.Record{
		ID: id,
		Fields: map[string]any{
			fieldName:        name,
			fieldDescription: description,
			fieldPrice:       price,
			fieldImageURL:    "http://x/" + id + ".png",
		},
		CreatedTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func orderRecord(id, productID, email string, qty float64, status string) store.Record {
	fields := map[string]any{
		fieldBuyerName:    "Jo Buyer",
		fieldBuyerEmail:   email,
		fieldBuyerAddress: "1 Main St",
		fieldBuyerCell:    "555-0100",
		fieldQuantity:     qty,
		fieldStatus:       status,
	}
	if productID != "" {
		fields[fieldProductRef] = []any{productID}
	}
	return store.Record{
		ID:          id,
		Fields:      fields,
		CreatedTime: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func validOrderInput(productID string) OrderInput {
	return OrderInput{
		ProductID:    productID,
		BuyerName:    "Jo Buyer",
		BuyerEmail:   "jo@example.com",
		BuyerAddress: "1 Main St",
		BuyerCell:    "555-0100",
		Quantity:     "3",
	}
}
