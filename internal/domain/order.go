package domain

import "time"

// Order references its Product weakly, by id. The product may be edited or
// deleted after the order is placed; the reference is never cascaded.
type Order struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId,omitempty"`
	Product      *Product  `json:"Product,omitempty"`
	BuyerName    string    `json:"buyerName"`
	BuyerEmail   string    `json:"buyerEmail"`
	BuyerAddress string    `json:"buyerAddress"`
	BuyerCell    string    `json:"buyerCell"`
	Quantity     int       `json:"quantity"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`

	// ProductUnavailable is set when the referenced product no longer exists,
	// so a dangling reference renders as "unavailable" instead of failing the
	// whole lookup.
	ProductUnavailable bool `json:"productUnavailable,omitempty"`
}
