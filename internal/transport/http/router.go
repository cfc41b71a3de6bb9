package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/apolenov/webstore/internal/handlers"
)

type Deps struct {
	DB             *gorm.DB
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", d.CatalogHandler.GetCatalog)
	e.GET("/add/:id", d.CartHandler.AddToCart)
	e.GET("/cart", d.CartHandler.GetCart)
	e.GET("/checkout", d.CartHandler.Checkout)
}
