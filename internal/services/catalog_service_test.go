package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/mocks"
	"storefront/internal/store"
)

func TestCatalogService_List(t *testing.T) {
	ms := newMockStore()
	ms.Tables[productsTable].On("Select", mock.Anything, "").Return([]store.Record{
		productRecord("rec1", "Widget", "A widget", 9.99),
		productRecord("rec2", "Gadget", "A gadget", 19.5),
	}, nil)

	svc := NewCatalogService(ms)
	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "rec1", out[0].ID)
	assert.Equal(t, "Widget", out[0].Name)
	assert.Equal(t, 9.99, out[0].Price)
	assert.Equal(t, "http://x/rec1.png", out[0].ImageURL)
}

func TestCatalogService_ListEmptyCatalog(t *testing.T) {
	ms := newMockStore()
	ms.Tables[productsTable].On("Select", mock.Anything, "").Return([]store.Record{}, nil)

	out, err := NewCatalogService(ms).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCatalogService_Create(t *testing.T) {
	tests := []struct {
		name       string
		input      ProductInput
		setupMocks func(*mocks.MockTable)
		wantField  string
		wantPrice  float64
		wantErr    bool
	}{
		{
			name:  "valid product with string price",
			input: ProductInput{Name: "Widget", Description: "A widget", Price: "9.99", ImageURL: "http://x/y.png"},
			setupMocks: func(products *mocks.MockTable) {
				products.On("Create", mock.Anything, mock.MatchedBy(func(fields map[string]any) bool {
					return fields[fieldPrice] == 9.99
				})).Return(store.Record{
					ID:     "recNew",
					Fields: map[string]any{fieldName: "Widget", fieldDescription: "A widget", fieldPrice: 9.99, fieldImageURL: "http://x/y.png"},
				}, nil)
			},
			wantPrice: 9.99,
		},
		{
			name:    "missing name",
			input:   ProductInput{Description: "d", Price: "1", ImageURL: "u"},
			wantErr: true, wantField: "name",
		},
		{
			name:    "missing description",
			input:   ProductInput{Name: "n", Price: "1", ImageURL: "u"},
			wantErr: true, wantField: "description",
		},
		{
			name:    "missing image url",
			input:   ProductInput{Name: "n", Description: "d", Price: "1"},
			wantErr: true, wantField: "imageUrl",
		},
		{
			name:    "missing price",
			input:   ProductInput{Name: "n", Description: "d", ImageURL: "u"},
			wantErr: true, wantField: "price",
		},
		{
			name:    "malformed price is rejected before any store call",
			input:   ProductInput{Name: "n", Description: "d", Price: "cheap", ImageURL: "u"},
			wantErr: true, wantField: "price",
		},
		{
			name:    "NaN price is rejected",
			input:   ProductInput{Name: "n", Description: "d", Price: "NaN", ImageURL: "u"},
			wantErr: true, wantField: "price",
		},
		{
			name:    "negative price is rejected",
			input:   ProductInput{Name: "n", Description: "d", Price: "-1", ImageURL: "u"},
			wantErr: true, wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := newMockStore()
			if tt.setupMocks != nil {
				tt.setupMocks(ms.Tables[productsTable])
			}

			p, err := NewCatalogService(ms).Create(context.Background(), tt.input)

			if tt.wantErr {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				require.NotNil(t, p)
				assert.Equal(t, "recNew", p.ID)
				assert.Equal(t, tt.wantPrice, p.Price)
			}
			ms.Tables[productsTable].AssertExpectations(t)
		})
	}
}

func TestCatalogService_UpdateNotFound(t *testing.T) {
	ms := newMockStore()
	ms.Tables[productsTable].On("Update", mock.Anything, "recGone", mock.Anything).
		Return(store.Record{}, store.ErrRecordNotFound)

	_, err := NewCatalogService(ms).Update(context.Background(), "recGone",
		ProductInput{Name: "n", Description: "d", Price: "1", ImageURL: "u"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_DeleteNotFound(t *testing.T) {
	ms := newMockStore()
	ms.Tables[productsTable].On("Destroy", mock.Anything, "recGone").Return(store.ErrRecordNotFound)

	err := NewCatalogService(ms).Delete(context.Background(), "recGone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_StoreFailureIsGeneric(t *testing.T) {
	ms := newMockStore()
	ms.Tables[productsTable].On("Select", mock.Anything, "").Return(nil, errors.New("network down"))

	_, err := NewCatalogService(ms).List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOperationFailed)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
