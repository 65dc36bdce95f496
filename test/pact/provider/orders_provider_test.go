//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	pacttest "github.com/Apurer/northwind-orders/test/pact"

	northwindserver "github.com/Apurer/northwind-orders/go"
	ordersmemory "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/northwind-orders/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/northwind-orders/internal/domains/orders/application"
	"github.com/Apurer/northwind-orders/internal/domains/orders/domain"
	"github.com/Apurer/northwind-orders/internal/platform/migrations"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrdersProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	reset := func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
		app.reset(t)
		return nil, nil
	}
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: reset,
		pacttest.StateOrderMissing:   reset,
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
	}

	verifier := pactprovider.NewVerifier()
	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   atomic.Pointer[ordersmemory.Repository]
	router atomic.Pointer[gin.Engine]
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.router.Load().ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

// reset swaps in an empty repository so every interaction starts from a clean store.
func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	catalog, err := migrations.DefaultCatalog()
	require.NoError(t, err)

	repo := ordersmemory.NewRepository(catalog)
	handlers := northwindserver.ApiHandleFunctions{
		OrdersAPI: northwindserver.NewOrdersAPI(ordersobs.New(ordersapp.NewService(repo))),
		HealthAPI: northwindserver.NewHealthAPI(nil),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = northwindserver.NewRouterWithGinEngine(router, handlers)

	a.repo.Store(repo)
	a.router.Store(router)
}

func (a *contractProviderApp) seedOrder(t testing.TB, id int64) {
	t.Helper()
	order := &domain.Order{
		ID:           id,
		Customer:     domain.Customer{Code: pacttest.ExampleCustomerID},
		Employee:     domain.Employee{ID: pacttest.ExampleEmployeeID},
		Shipper:      domain.Shipper{ID: pacttest.ExampleShipperID},
		OrderDate:    time.Date(1996, 7, 4, 0, 0, 0, 0, time.UTC),
		RequiredDate: time.Date(1996, 8, 1, 0, 0, 0, 0, time.UTC),
		Freight:      decimal.RequireFromString("32.38"),
		ShipName:     "Vins et alcools Chevalier",
		ShippingAddress: domain.NewShippingAddress(
			"59 rue de l'Abbaye", "Reims", nil, "51100", "France"),
		OrderDetails: []domain.OrderDetail{
			{Product: domain.Product{ID: 11}, UnitPrice: decimal.RequireFromString("14"), Quantity: 12},
			{Product: domain.Product{ID: 72}, UnitPrice: decimal.RequireFromString("34.8"), Quantity: 5},
		},
	}
	_, err := a.repo.Load().AddOrder(context.Background(), order)
	require.NoError(t, err)
}
