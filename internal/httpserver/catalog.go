package httpserver

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// Home lists the catalog and echoes back the updated_item query parameter so
// the client can highlight the row it just changed.
func (h *CatalogHTTP) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.home")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	updated := 0
	if v := c.QueryParam("updated_item"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			updated = n
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items":        items,
		"updated_item": updated,
	})
}

func itemFormInput(c echo.Context) (service.ItemInput, *multipart.FileHeader, error) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return service.ItemInput{}, nil, errors.New("price must be a number")
	}
	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return service.ItemInput{}, nil, errors.New("quantity must be an integer")
	}

	in := service.ItemInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Quantity:    quantity,
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}
	return in, image, nil
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create")

	in, image, err := itemFormInput(c)
	if err != nil {
		l.Warn("create_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	item, err := h.Svc.CreateItem(ctx, in, image)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_item_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		l.Error("create_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	l.Info("item created", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	in, image, err := itemFormInput(c)
	if err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	item, err := h.Svc.UpdateItem(ctx, id, in, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_item_error", "status", 404, "item_id", id)
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_item_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			l.Error("update_item_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	l.Info("item updated", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_item_error", "status", 404, "item_id", id)
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		l.Error("delete_item_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	l.Info("item deleted", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
	}

	total, items, err := h.Svc.Search(ctx, query, 0, 20)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Items: items})
}
