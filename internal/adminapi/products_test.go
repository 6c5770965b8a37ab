package adminapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
)

func TestCreateProduct(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/crm/products", `{"name":"Pen","price":1.5,"stock":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res crm.ProductResult
	decodeData(t, rec, &res)
	assert.True(t, res.Success)
	require.NotNil(t, res.Product)
	assert.Equal(t, "1.50", res.Product.Price.StringFixed(2))

	rec = env.do(http.MethodPost, "/api/v1/crm/products", `{"name":"Free","price":"0","stock":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = crm.ProductResult{}
	decodeData(t, rec, &res)
	assert.False(t, res.Success)
	assert.Equal(t, "price must be positive", res.Message)

	rec = env.do(http.MethodPost, "/api/v1/crm/products", `{"name":"Neg","price":"1","stock":-1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = crm.ProductResult{}
	decodeData(t, rec, &res)
	assert.False(t, res.Success)
	assert.Equal(t, "stock cannot be negative", res.Message)

	rec = env.do(http.MethodPost, "/api/v1/crm/products", `{"name":"Bad","price":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProducts(t *testing.T) {
	env := setupEnv(t)
	env.createProductID(t, "Cheap Pen", "1.50", 100)
	fancy := env.createProductID(t, "Fancy Pen", "45.00", 2)
	env.createProductID(t, "Notebook", "7.25", 0)

	cases := []struct {
		query string
		names []string
	}{
		{"name=PEN&sort=name", []string{"Cheap Pen", "Fancy Pen"}},
		{"price_gte=5&price_lte=50&sort=price", []string{"Notebook", "Fancy Pen"}},
		{"stock_gte=1&stock_lte=10", []string{"Fancy Pen"}},
		{"stock_lte=-1", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/api/v1/crm/products?"+tc.query, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var rows []domain.Product
			decodeData(t, rec, &rows)
			names := make([]string, 0, len(rows))
			for _, p := range rows {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.names, names)
		})
	}

	rec := env.do(http.MethodGet, "/api/v1/crm/products?price_gte=cheap", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/crm/products/"+fancy, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Product
	decodeData(t, rec, &p)
	assert.Equal(t, 2, p.Stock)

	rec = env.do(http.MethodGet, "/api/v1/crm/products/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
