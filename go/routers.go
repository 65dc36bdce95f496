package northwindserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers the router exposes.
type ApiHandleFunctions struct {
	OrdersAPI OrdersAPI
	HealthAPI HealthAPI
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// NewRouter returns a new router with default middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers the routes on an engine whose middleware is already in place.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	if handleFunctions.Metrics != nil {
		router.GET("/metrics", gin.WrapH(handleFunctions.Metrics))
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"GetOrder", http.MethodGet, "/api/orders/:orderId", handleFunctions.OrdersAPI.GetOrder},
		{"GetOrders", http.MethodGet, "/api/orders", handleFunctions.OrdersAPI.GetOrders},
		{"AddOrder", http.MethodPost, "/api/orders", handleFunctions.OrdersAPI.AddOrder},
		{"UpdateOrder", http.MethodPut, "/api/orders/:orderId", handleFunctions.OrdersAPI.UpdateOrder},
		{"RemoveOrder", http.MethodDelete, "/api/orders/:orderId", handleFunctions.OrdersAPI.RemoveOrder},
		{"Livez", http.MethodGet, "/livez", handleFunctions.HealthAPI.Livez},
		{"Readyz", http.MethodGet, "/readyz", handleFunctions.HealthAPI.Readyz},
	}
}
