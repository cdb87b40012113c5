package services

import (
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// Table and field names as they exist in the record store. The order's
// product reference is a single-element reference list under "Product".
const (
	productsTable = "Products"
	ordersTable   = "Orders"

	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldImageURL    = "imageUrl"
	fieldCategory    = "category"

	fieldProductRef   = "Product"
	fieldBuyerName    = "buyerName"
	fieldBuyerEmail   = "buyerEmail"
	fieldBuyerAddress = "buyerAddress"
	fieldBuyerCell    = "buyerCell"
	fieldQuantity     = "quantity"
	fieldStatus       = "status"
)

func fieldString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func fieldFloat(fields map[string]any, key string) float64 {
	switch v := fields[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func productFromRecord(r store.Record) domain.Product {
	return domain.Product{
		ID:          r.ID,
		Name:        fieldString(r.Fields, fieldName),
		Description: fieldString(r.Fields, fieldDescription),
		Price:       fieldFloat(r.Fields, fieldPrice),
		ImageURL:    fieldString(r.Fields, fieldImageURL),
		Category:    fieldString(r.Fields, fieldCategory),
	}
}

func orderFromRecord(r store.Record) domain.Order {
	o := domain.Order{
		ID:           r.ID,
		BuyerName:    fieldString(r.Fields, fieldBuyerName),
		BuyerEmail:   fieldString(r.Fields, fieldBuyerEmail),
		BuyerAddress: fieldString(r.Fields, fieldBuyerAddress),
		BuyerCell:    fieldString(r.Fields, fieldBuyerCell),
		Quantity:     int(fieldFloat(r.Fields, fieldQuantity)),
		CreatedAt:    r.CreatedTime,
	}

	// Legacy records may carry the misspelled "received"; normalize on read,
	// pass anything unrecognized through untouched.
	raw := fieldString(r.Fields, fieldStatus)
	if st, err := domain.ParseStatus(raw); err == nil {
		o.Status = st
	} else {
		o.Status = domain.Status(raw)
	}

	// JSON decoding yields []any; records that never crossed the wire may
	// still hold the []string the services wrote.
	switch refs := r.Fields[fieldProductRef].(type) {
	case []any:
		if len(refs) > 0 {
			if id, ok := refs[0].(string); ok {
				o.ProductID = id
			}
		}
	case []string:
		if len(refs) > 0 {
			o.ProductID = refs[0]
		}
	}
	return o
}

// mapStoreErr folds store failures into the service error taxonomy: the
// not-found signal stays distinguishable, everything else becomes a generic
// operation failure that keeps the cause for logging.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrOperationFailed, err)
}
