package storefront

import (
	"strings"

	"storefront/internal/domain"
)

// CategoryAll is the synthetic filter entry that passes every product.
const CategoryAll = "all"

// Catalog holds the fetched product collection and derives filtered views
// from it. Filtering is pure; it can be recomputed on every keystroke.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Products() []domain.Product {
	return c.products
}

// Categories is the distinct set of category values observed across the
// collection, in first-seen order, prefixed with the synthetic "all" entry.
// Legacy records without a category contribute nothing.
func (c *Catalog) Categories() []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Filter intersects a category filter with a free-text search. Category "all"
// passes everything, otherwise the match is exact. The query is a
// case-insensitive substring test against name or description.
func (c *Catalog) Filter(category, query string) []domain.Product {
	query = strings.ToLower(query)
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != CategoryAll && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}
