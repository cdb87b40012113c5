package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// ProductInput carries the creation-form fields. Price arrives as text and is
// validated here rather than persisted unparsed.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
	Category    string
}

type CatalogService struct {
	products store.Table
	cache    ProductCache
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{products: s.Table(productsTable)}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.cache = NewRedisProductCache(client)
}

func (s *CatalogService) SetProductCache(cache ProductCache) {
	s.cache = cache
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	records, err := s.products.Select(ctx, "")
	if err != nil {
		return nil, mapStoreErr(err)
	}
	out := make([]domain.Product, 0, len(records))
	for _, r := range records {
		out = append(out, productFromRecord(r))
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	fields, err := productFields(in)
	if err != nil {
		return nil, err
	}
	r, err := s.products.Create(ctx, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	p := productFromRecord(r)
	return &p, nil
}

// Update is a full replace of the mutable fields on the identified record.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	fields, err := productFields(in)
	if err != nil {
		return nil, err
	}
	r, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.invalidate(ctx, id)
	p := productFromRecord(r)
	return &p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Destroy(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate drops the joined-product cache entry so order reads see the
// mutation immediately instead of after the TTL.
func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Del(ctx, productCacheKey(id))
	}
}

func productFields(in ProductInput) (map[string]any, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, &domain.ValidationError{Field: "description", Message: "required"}
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, &domain.ValidationError{Field: "imageUrl", Message: "required"}
	}
	if strings.TrimSpace(in.Price) == "" {
		return nil, &domain.ValidationError{Field: "price", Message: "required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, &domain.ValidationError{Field: "price", Message: "must be a number"}
	}
	if price < 0 {
		return nil, &domain.ValidationError{Field: "price", Message: "must not be negative"}
	}

	fields := map[string]any{
		fieldName:        in.Name,
		fieldDescription: in.Description,
		fieldPrice:       price,
		fieldImageURL:    in.ImageURL,
	}
	if in.Category != "" {
		fields[fieldCategory] = in.Category
	}
	return fields, nil
}
