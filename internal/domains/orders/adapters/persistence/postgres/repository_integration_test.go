//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/domains/orders/ports"
	"github.com/Apurer/northwind-orders/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("northwind_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))
	catalog, err := migrations.DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, migrations.Seed(ctx, db, catalog))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresRepository_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	in := sampleOrder()
	id, err := repo.AddOrder(ctx, in)
	require.NoError(t, err)

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.True(t, in.Freight.Equal(got.Freight))
	assert.True(t, in.OrderDate.Equal(got.OrderDate))
	assert.Equal(t, in.ShippingAddress, got.ShippingAddress)
	require.Len(t, got.OrderDetails, 2)
	assert.Equal(t, "Chang", got.OrderDetails[1].Product.Name)
	assert.InDelta(t, 0.15, got.OrderDetails[1].Discount, 1e-6)
}

func TestPostgresRepository_UpdateAndRemove(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	in := sampleOrder()
	in.ID = 42
	_, err := repo.AddOrder(ctx, in)
	require.NoError(t, err)

	changed := sampleOrder()
	changed.ID = 42
	changed.Freight = decimal.RequireFromString("11.50")
	changed.OrderDetails = []domain.OrderDetail{
		{Product: domain.Product{ID: 11}, UnitPrice: decimal.RequireFromString("21"), Quantity: 12},
	}
	require.NoError(t, repo.UpdateOrder(ctx, changed))

	got, err := repo.GetOrder(ctx, 42)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("11.5").Equal(got.Freight))
	require.Len(t, got.OrderDetails, 1)
	assert.Equal(t, int64(11), got.OrderDetails[0].Product.ID)

	require.NoError(t, repo.RemoveOrder(ctx, 42))
	_, err = repo.GetOrder(ctx, 42)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
	assert.Zero(t, countDetails(t, db, 42))

	err = repo.RemoveOrder(ctx, 42)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}

func TestPostgresRepository_GeneratedIDAfterExplicitID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	explicit := sampleOrder()
	explicit.ID = 1
	id, err := repo.AddOrder(ctx, explicit)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	explicit = sampleOrder()
	explicit.ID = 42
	_, err = repo.AddOrder(ctx, explicit)
	require.NoError(t, err)

	generated, err := repo.AddOrder(ctx, sampleOrder())
	require.NoError(t, err)
	assert.Greater(t, generated, int64(42))

	got, err := repo.GetOrder(ctx, generated)
	require.NoError(t, err)
	assert.Equal(t, generated, got.ID)
}

func TestPostgresRepository_ConcurrentUpdatesSerialize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	id, err := repo.AddOrder(ctx, sampleOrder())
	require.NoError(t, err)

	products := []int64{1, 2, 3, 4, 6}
	var g errgroup.Group
	for _, productID := range products {
		g.Go(func() error {
			o := sampleOrder()
			o.ID = id
			o.OrderDetails = []domain.OrderDetail{
				{Product: domain.Product{ID: productID}, UnitPrice: decimal.NewFromInt(10), Quantity: productID},
			}
			return repo.UpdateOrder(ctx, o)
		})
	}
	require.NoError(t, g.Wait())

	got, err := repo.GetOrder(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.OrderDetails, 1)
	assert.Contains(t, products, got.OrderDetails[0].Product.ID)
	assert.Equal(t, got.OrderDetails[0].Product.ID, got.OrderDetails[0].Quantity)
}
