package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/middleware"
)

type Deps struct {
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Checkout  *CheckoutHTTP
	Contact   *ContactHTTP
	Tokens    *middleware.TokenService
	UploadDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)
	e.GET("/logout", d.Auth.Logout)

	e.GET("/", d.Catalog.Home)
	e.GET("/about", d.Contact.About)
	e.GET("/api/search", d.Catalog.Search)

	e.POST("/new-item", d.Catalog.CreateItem, d.Tokens.RequireAdmin)
	e.POST("/edit-item/:id", d.Catalog.UpdateItem, d.Tokens.RequireAdmin)
	e.GET("/delete/:id", d.Catalog.DeleteItem, d.Tokens.RequireAdmin)

	e.POST("/add-to-cart/:id", d.Cart.AddToCart, d.Tokens.RequireAuth)
	e.GET("/api/cart", d.Cart.GetCart, d.Tokens.RequireAuth)
	e.DELETE("/api/cart/remove/:id", d.Cart.RemoveOne, d.Tokens.RequireAuth)
	e.DELETE("/api/cart", d.Cart.Clear, d.Tokens.RequireAuth)

	e.POST("/create-checkout-session", d.Checkout.Create, d.Tokens.RequireAuth)
	e.GET("/success", d.Checkout.Success)
	e.GET("/cancel", d.Checkout.Cancel)

	e.POST("/contact", d.Contact.Send)

	e.Static("/static/uploads", d.UploadDir)
}
