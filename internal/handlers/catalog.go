package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apolenov/webstore/internal/store"
)

type CatalogHandler struct {
	Store *store.ProductStore
}

func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	products, err := h.Store.ListProducts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "catalog", echo.Map{
		"Products": products,
	})
}
