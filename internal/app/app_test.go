package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcrm/config"
	"github.com/talkincode/toughcrm/internal/crm"
	"github.com/talkincode/toughcrm/internal/domain"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Location = "UTC"
	cfg.System.Workdir = t.TempDir()
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = ":memory:"
	cfg.Logger.Mode = "production"
	return cfg
}

func startApp(t *testing.T, cfg *config.AppConfig) *Application {
	t.Helper()
	a := NewApplication(cfg)
	a.Init(cfg)
	t.Cleanup(a.Release)
	return a
}

func TestApplication_InitMigratesAndSchedules(t *testing.T) {
	a := startApp(t, testConfig(t))

	for _, table := range domain.Tables {
		assert.True(t, a.DB().Migrator().HasTable(table))
	}
	require.NotNil(t, a.Scheduler())
	assert.Len(t, a.Scheduler().Entries(), 2)
	require.NotNil(t, a.CRM())

	counts, err := a.CRM().Counts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Products)
}

func TestApplication_SeedDemoProductsIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crm.SeedDemoProducts = true
	a := startApp(t, cfg)

	a.checkProducts()

	var count int64
	require.NoError(t, a.DB().Model(&domain.Product{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)

	var p domain.Product
	require.NoError(t, a.DB().Where("name = ?", "demo-widget-pro").First(&p).Error)
	assert.True(t, decimal.RequireFromString("24.50").Equal(p.Price))
}

func TestApplication_LowStockReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Crm.SeedDemoProducts = true
	cfg.Crm.LowStockThreshold = 5
	a := startApp(t, cfg)

	products, err := a.lowStockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "demo-service-annual", products[0].Name)

	assert.NotPanics(t, a.SchedLowStockTask)
	assert.NotPanics(t, a.SchedSummaryTask)
}

func TestApplication_EventStats(t *testing.T) {
	a := startApp(t, testConfig(t))
	ctx := context.Background()

	res := a.CRM().CreateCustomer(ctx, crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.True(t, res.Success, res.Message)
	p := a.CRM().CreateProduct(ctx, crm.ProductInput{Name: "Pen", Price: decimal.NewFromInt(2), Stock: 10})
	require.True(t, p.Success, p.Message)
	o := a.CRM().CreateOrder(ctx, crm.OrderInput{CustomerID: res.Customer.ID, ProductIDs: []int64{p.Product.ID}})
	require.True(t, o.Success, o.Error)
	require.NoError(t, a.CRM().DeleteCustomer(ctx, res.Customer.ID))

	assert.Equal(t, EventStats{
		CustomersCreated: 1,
		CustomersDeleted: 1,
		ProductsCreated:  1,
		OrdersCreated:    1,
	}, a.EventStats())
}

func TestApplication_InitDbDropsData(t *testing.T) {
	a := startApp(t, testConfig(t))
	ctx := context.Background()
	res := a.CRM().CreateCustomer(ctx, crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.True(t, res.Success)

	a.InitDb()

	counts, err := a.CRM().Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Customers)
}

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, ":memory:", sqlitePath("", "/var/toughcrm"))
	assert.Equal(t, ":memory:", sqlitePath(":memory:", "/var/toughcrm"))
	assert.Equal(t, "/tmp/crm.db", sqlitePath("/tmp/crm.db", "/var/toughcrm"))
	assert.Equal(t, filepath.Join("/var/toughcrm", "data", "toughcrm.db"), sqlitePath("toughcrm", "/var/toughcrm"))
	assert.Equal(t, filepath.Join("/var/toughcrm", "data", "crm.db"), sqlitePath("crm.db", "/var/toughcrm"))
}

func TestGetDialector(t *testing.T) {
	_, err := getDialector(config.DBConfig{Type: "oracle"}, t.TempDir())
	assert.Error(t, err)

	d, err := getDialector(config.DBConfig{Type: "postgres", Host: "localhost", Port: 5432}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	workdir := t.TempDir()
	d, err = getDialector(config.DBConfig{Type: "sqlite", Name: "crm"}, workdir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
	assert.DirExists(t, filepath.Join(workdir, "data"))
}
