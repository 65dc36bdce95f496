package northwindserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	ordersports "github.com/Apurer/northwind-orders/internal/domains/orders/ports"
	apierrors "github.com/Apurer/northwind-orders/internal/shared/errors"
)

var orderResponder = apierrors.NewChainedResponder("", mapOrderError)

// mapOrderError translates the repository error taxonomy into problem details.
// Storage failures are left unmapped so their cause never reaches the client.
func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersports.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrInvalidArgument):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrInvariantViolation):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrNotImplemented):
		return apierrors.ErrNotImplemented.WithDetail("order listing is not available"), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondOrderError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	orderResponder.RespondError(c, err)
}
