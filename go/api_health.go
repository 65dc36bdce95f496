package northwindserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/northwind-orders/internal/shared/errors"
)

// HealthAPI serves liveness and readiness probes.
type HealthAPI struct {
	ready func(context.Context) error
}

// NewHealthAPI creates a HealthAPI. A nil ready check always reports ready.
func NewHealthAPI(ready func(context.Context) error) HealthAPI {
	return HealthAPI{ready: ready}
}

// Get /livez
func (api *HealthAPI) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /readyz
func (api *HealthAPI) Readyz(c *gin.Context) {
	if api.ready != nil {
		if err := api.ready(c.Request.Context()); err != nil {
			apierrors.Respond(c, apierrors.ErrUnavailable.WithDetail("storage is not reachable"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
