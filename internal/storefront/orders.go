package storefront

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

type SearchMode string

const (
	SearchByEmail SearchMode = "email"
	SearchByID    SearchMode = "orderId"
)

// OrderView drives the order-history screen: one search input whose meaning
// depends on the mode, a uniform list rendering, and in-place cancellation.
type OrderView struct {
	client *Client
	orders []domain.Order
}

func NewOrderView(client *Client) *OrderView {
	return &OrderView{client: client}
}

func (v *OrderView) Orders() []domain.Order {
	return v.orders
}

// Search looks up orders by the given mode and holds the result. A by-id
// lookup already arrives as a one-element array from the API, so both modes
// feed the same rendering path.
func (v *OrderView) Search(ctx context.Context, mode SearchMode, value string) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	switch mode {
	case SearchByID:
		orders, err = v.client.OrderByID(ctx, value)
	case SearchByEmail:
		orders, err = v.client.OrdersByEmail(ctx, value)
	default:
		return nil, fmt.Errorf("unknown search mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	v.orders = orders
	return orders, nil
}

// CanCancel mirrors the cancel affordance: no cancel once an order reached a
// terminal status.
func CanCancel(o domain.Order) bool {
	return domain.CanTransition(o.Status, domain.StatusCancelled)
}

// Cancel cancels the order and, only on confirmed success, updates the
// locally held copy. No re-fetch.
func (v *OrderView) Cancel(ctx context.Context, id string) error {
	if _, err := v.client.CancelOrder(ctx, id); err != nil {
		return err
	}
	for i := range v.orders {
		if v.orders[i].ID == id {
			v.orders[i].Status = domain.StatusCancelled
		}
	}
	return nil
}
