package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
)

type mockCatalog struct {
	ListProductsFunc func(ctx context.Context, pageSize int) ([]domain.Product, error)
}

func (m *mockCatalog) ListProducts(ctx context.Context, pageSize int) ([]domain.Product, error) {
	return m.ListProductsFunc(ctx, pageSize)
}

func TestGroupByCategory(t *testing.T) {
	petiscos := &domain.Category{ID: 1, Name: "Petiscos"}
	bebidas := &domain.Category{ID: 2, Name: "Bebidas"}
	products := []domain.Product{
		{ID: 1, Name: "Coxinha", Category: petiscos},
		{ID: 2, Name: "Chopp", Category: bebidas},
		{ID: 3, Name: "Brinde"},
		{ID: 4, Name: "Pastel", Category: petiscos},
		{ID: 5, Name: "Misterio", Category: &domain.Category{ID: 9}},
	}

	groups := GroupByCategory(products)

	require.Len(t, groups, 3)
	assert.Equal(t, "Petiscos", groups[0].Name)
	assert.Len(t, groups[0].Products, 2)
	assert.Equal(t, "Bebidas", groups[1].Name)
	assert.Equal(t, domain.UncategorizedName, groups[2].Name)
	assert.Len(t, groups[2].Products, 2)
}

func TestGroupByCategory_Empty(t *testing.T) {
	groups := GroupByCategory(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestHandleListProducts(t *testing.T) {
	catalog := &mockCatalog{ListProductsFunc: func(_ context.Context, pageSize int) ([]domain.Product, error) {
		assert.Equal(t, catalogPageSize, pageSize)
		return []domain.Product{
			{ID: 1, Name: "Coxinha", Price: decimal.RequireFromString("7.50"), Category: &domain.Category{Name: "Petiscos"}},
		}, nil
	}}
	ctrl := NewModule(catalog, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleListProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "Petiscos", resp.Categories[0].Name)
	assert.True(t, decimal.RequireFromString("7.5").Equal(resp.Categories[0].Products[0].Price))
}

func TestHandleListProducts_UpstreamFailure(t *testing.T) {
	catalog := &mockCatalog{ListProductsFunc: func(context.Context, int) ([]domain.Product, error) {
		return nil, errors.New("dial tcp: refused")
	}}
	ctrl := NewModule(catalog, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.HandleListProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
