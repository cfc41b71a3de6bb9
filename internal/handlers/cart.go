package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/apolenov/webstore/internal/cart"
	"github.com/apolenov/webstore/internal/events"
	"github.com/apolenov/webstore/internal/store"
)

type CartHandler struct {
	Store    *store.ProductStore
	Sessions *cart.Codec
	Producer *events.Producer

	// Redirect is where /add sends the browser, "/" or "/cart".
	Redirect string
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, c.RealIP(), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	// The id is appended as-is, existence is only checked at render time.
	items, err := h.Sessions.Add(c, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":      "item_added",
		"productID": id,
		"cart_size": len(items),
	})

	target := h.Redirect
	if target == "" {
		target = "/cart"
	}
	return c.Redirect(http.StatusFound, target)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ids := h.Sessions.Snapshot(c)

	items, total, err := cart.Resolve(c.Request().Context(), h.Store, ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "cart", echo.Map{
		"Items": items,
		"Total": total.String(),
	})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	h.Sessions.Clear(c)

	h.publish(c, map[string]any{
		"type": "checkout",
	})

	return c.Render(http.StatusOK, "checkout", nil)
}
