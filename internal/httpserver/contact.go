package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Send(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.send")

	var req struct {
		Name    string `json:"name" form:"name"`
		Email   string `json:"email" form:"email"`
		Phone   string `json:"phone" form:"phone"`
		Message string `json:"message" form:"message"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("contact_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Svc.SendContact(ctx, req.Name, req.Email, req.Phone, req.Message); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("contact_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		l.Error("contact_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	l.Info("contact message sent")
	return c.JSON(http.StatusOK, echo.Map{"sent": true})
}

func (h *ContactHTTP) About(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    "storefront",
		"version": "1.0",
	})
}
