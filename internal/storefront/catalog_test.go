package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func sampleCatalog() *Catalog {
	return NewCatalog([]domain.Product{
		{ID: "rec1", Name: "Blue Mug", Description: "Ceramic mug", Category: "kitchen"},
		{ID: "rec2", Name: "Desk Lamp", Description: "LED lamp", Category: "office"},
		{ID: "rec3", Name: "Notebook", Description: "Ruled paper", Category: "office"},
		{ID: "rec4", Name: "Mystery Box", Description: "No category set"}, // legacy record
	})
}

func TestCategories(t *testing.T) {
	got := sampleCatalog().Categories()
	assert.Equal(t, []string{CategoryAll, "kitchen", "office"}, got)
}

func TestCategoriesEmptyCatalog(t *testing.T) {
	assert.Equal(t, []string{CategoryAll}, NewCatalog(nil).Categories())
}

func TestFilter(t *testing.T) {
	c := sampleCatalog()

	tests := []struct {
		name     string
		category string
		query    string
		wantIDs  []string
	}{
		{"all plus empty query is the full collection", CategoryAll, "", []string{"rec1", "rec2", "rec3", "rec4"}},
		{"category narrows by exact match", "office", "", []string{"rec2", "rec3"}},
		{"query matches name case-insensitively", CategoryAll, "LAMP", []string{"rec2"}},
		{"query matches description too", CategoryAll, "ceramic", []string{"rec1"}},
		{"category and query intersect", "office", "paper", []string{"rec3"}},
		{"no match yields empty", "kitchen", "lamp", []string{}},
		{"legacy record fails any specific category", "office", "mystery", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.category, tt.query)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	c := sampleCatalog()
	first := c.Filter("office", "lamp")
	second := c.Filter("office", "lamp")
	assert.Equal(t, first, second)
	// Filtering never mutates the held collection.
	assert.Len(t, c.Products(), 4)
}
