package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/store"
)

// populateConcurrency bounds the parallel product lookups when joining a
// multi-order listing.
const populateConcurrency = 4

const productCacheTTL = time.Minute

// OrderInput carries the order-form fields. Quantity arrives as text and is
// validated here. Any status the caller might send is ignored: new orders are
// always pending.
type OrderInput struct {
	ProductID    string
	BuyerName    string
	BuyerEmail   string
	BuyerAddress string
	BuyerCell    string
	Quantity     string
}

type OrderService struct {
	orders    store.Table
	products  store.Table
	publisher rabbitmq.PublisherInterface
	cache     ProductCache
}

func NewOrderService(s store.Store, pub rabbitmq.PublisherInterface) *OrderService {
	return &OrderService{
		orders:    s.Table(ordersTable),
		products:  s.Table(productsTable),
		publisher: pub,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.cache = NewRedisProductCache(client)
}

func (s *OrderService) SetProductCache(cache ProductCache) {
	s.cache = cache
}

func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	fields, err := orderFields(in)
	if err != nil {
		return nil, err
	}

	// Single-shot create: a failed or timed-out call is never retried, so a
	// record is written at most once.
	r, err := s.orders.Create(ctx, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	o := orderFromRecord(r)

	go s.publish(domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:   o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		CreatedAt: o.CreatedAt,
	})

	return &o, nil
}

// Get fetches one order and joins its referenced product.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	r, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	o := orderFromRecord(r)
	if err := s.populate(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByEmail returns every order whose buyerEmail equals email exactly.
// Zero matches is a not-found, matching the single-id lookup. Products are
// joined per order, concurrently since each join is independent.
func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, &domain.ValidationError{Field: "buyerEmail", Message: "required"}
	}

	records, err := s.orders.Select(ctx, store.FieldEquals(fieldBuyerEmail, email))
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}

	out := make([]domain.Order, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(populateConcurrency)
	for i, r := range records {
		out[i] = orderFromRecord(r)
		o := &out[i]
		g.Go(func() error {
			return s.populate(gctx, o)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus applies one lifecycle transition. The requested status is
// normalized first, then checked against the transition table before the
// record is overwritten.
func (s *OrderService) UpdateStatus(ctx context.Context, id, rawStatus string) (*domain.Order, error) {
	to, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, &domain.ValidationError{Field: "status", Message: err.Error()}
	}

	r, err := s.orders.Find(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	o := orderFromRecord(r)

	if !domain.CanTransition(o.Status, to) {
		return nil, &domain.TransitionError{From: o.Status, To: to}
	}

	if _, err := s.orders.Update(ctx, id, map[string]any{fieldStatus: string(to)}); err != nil {
		return nil, mapStoreErr(err)
	}

	from := o.Status
	o.Status = to
	go s.publish(domain.EventOrderStatusChanged, domain.OrderStatusChangedEvent{
		OrderID:   o.ID,
		From:      from,
		To:        to,
		ChangedAt: time.Now().UTC(),
	})

	return &o, nil
}

// populate follows the order's product reference. A reference to a product
// that no longer exists marks the order instead of failing the lookup; any
// other store failure still fails it.
func (s *OrderService) populate(ctx context.Context, o *domain.Order) error {
	if o.ProductID == "" {
		return nil
	}

	p, err := s.productWithCache(ctx, o.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			o.ProductUnavailable = true
			return nil
		}
		return err
	}
	o.Product = p
	return nil
}

// productWithCache keeps joined product lookups off the store's rate limits.
// Catalog mutations invalidate the key, so a hit is always current product
// state, never a snapshot of a since-edited record.
func (s *OrderService) productWithCache(ctx context.Context, id string) (*domain.Product, error) {
	cacheKey := productCacheKey(id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	r, err := s.products.Find(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	p := productFromRecord(r)

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			s.cache.Set(ctx, cacheKey, string(data), productCacheTTL)
		}
	}
	return &p, nil
}

func (s *OrderService) publish(event string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), event, data); err != nil {
		log.Printf("failed to publish %s: %v", event, err)
	}
}

func orderFields(in OrderInput) (map[string]any, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, &domain.ValidationError{Field: "productId", Message: "required"}
	}
	required := []struct{ field, value string }{
		{"buyerName", in.BuyerName},
		{"buyerEmail", in.BuyerEmail},
		{"buyerAddress", in.BuyerAddress},
		{"buyerCell", in.BuyerCell},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &domain.ValidationError{Field: r.field, Message: "required"}
		}
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return nil, &domain.ValidationError{Field: "quantity", Message: "required"}
	}
	qty, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	if err != nil {
		return nil, &domain.ValidationError{Field: "quantity", Message: "must be an integer"}
	}
	if qty < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("must be at least 1, got %d", qty)}
	}

	return map[string]any{
		fieldProductRef:   []string{in.ProductID},
		fieldBuyerName:    in.BuyerName,
		fieldBuyerEmail:   in.BuyerEmail,
		fieldBuyerAddress: in.BuyerAddress,
		fieldBuyerCell:    in.BuyerCell,
		fieldQuantity:     qty,
		fieldStatus:       string(domain.StatusPending),
	}, nil
}
