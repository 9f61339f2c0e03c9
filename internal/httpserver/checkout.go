package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create")

	userID, err := currentUserID(c)
	if err != nil {
		l.Error("checkout_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	url, err := h.Svc.CreateCheckout(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			l.Warn("checkout_error", "status", 400)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cart is empty"})
		}
		// Provider failures surface with the raw message, no retry.
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	l.Info("checkout session created")
	return c.JSON(http.StatusOK, transport.CheckoutResponse{URL: url})
}

func (h *CheckoutHTTP) Success(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Payment successful!</h1>")
}

func (h *CheckoutHTTP) Cancel(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Payment cancelled.</h1>")
}
