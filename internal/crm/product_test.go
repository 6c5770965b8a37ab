package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateProduct_Success(t *testing.T) {
	s, store, bus := setupService(t)
	ctx := context.Background()

	res := s.CreateProduct(ctx, ProductInput{Name: " Widget ", Price: decimal.RequireFromString("9.99"), Stock: 3})

	require.True(t, res.Success, res.Message)
	assert.Equal(t, "created", res.Message)
	assert.Equal(t, "Widget", res.Product.Name)

	stored, err := store.GetProduct(ctx, res.Product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("9.99").Equal(stored.Price), stored.Price.String())
	assert.Equal(t, 3, stored.Stock)
	assert.Equal(t, []string{TopicProductCreated}, bus.Topics())
}

func TestService_CreateProduct_ZeroStockAllowed(t *testing.T) {
	s, _, _ := setupService(t)
	res := s.CreateProduct(context.Background(), ProductInput{Name: "Service", Price: decimal.NewFromInt(1), Stock: 0})
	assert.True(t, res.Success, res.Message)
}

func TestService_CreateProduct_Rejections(t *testing.T) {
	s, _, bus := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ProductInput
		msg  string
	}{
		{"missing name", ProductInput{Name: "", Price: decimal.NewFromInt(1)}, "name is required"},
		{"zero price", ProductInput{Name: "P", Price: decimal.Zero}, "price must be positive"},
		{"negative price", ProductInput{Name: "P", Price: decimal.NewFromInt(-5)}, "price must be positive"},
		{"rounds to zero", ProductInput{Name: "P", Price: decimal.RequireFromString("0.001")}, "price must be positive"},
		{"negative stock", ProductInput{Name: "P", Price: decimal.NewFromInt(1), Stock: -1}, "stock cannot be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.CreateProduct(ctx, tc.in)
			assert.False(t, res.Success)
			assert.Equal(t, tc.msg, res.Message)
			assert.Nil(t, res.Product)
		})
	}
	assert.Empty(t, bus.Topics())
}

func TestService_CreateProduct_RoundsToCents(t *testing.T) {
	s, _, _ := setupService(t)
	res := s.CreateProduct(context.Background(), ProductInput{Name: "P", Price: decimal.RequireFromString("9.999"), Stock: 1})
	require.True(t, res.Success)
	assert.Equal(t, "10.00", res.Product.Price.StringFixed(2))
}

func TestService_CreateProduct_StorageFailure(t *testing.T) {
	s := NewService(failingStore{err: errors.New("read-only database")}, nil)
	res := s.CreateProduct(context.Background(), ProductInput{Name: "P", Price: decimal.NewFromInt(1)})
	assert.False(t, res.Success)
	assert.Equal(t, "read-only database", res.Message)
}
