package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type cartAddressRequest struct {
	Address string `json:"address"`
}

// /cart, /cart/items/:productId, /cart/address を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	cart := e.Group("/cart", g.Auth...)

	cart.GET("", h.getCart)
	cart.POST("", h.addItem)
	cart.DELETE("", h.clear)
	cart.PUT("/items/:productId", h.updateItem)
	cart.DELETE("/items/:productId", h.removeItem)
	cart.PUT("/address", h.setAddress)
}

func (h *CartHandler) getCart(c echo.Context) error {
	v, err := h.uc.GetCart(c.Request().Context(), identityFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Cart fetched successfully", "cart", v)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req usecase.AddCartItemInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	v, err := h.uc.AddItem(c.Request().Context(), identityFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Item added to cart", "cart", v)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	v, err := h.uc.UpdateItem(c.Request().Context(), identityFrom(c), c.Param("productId"), req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Cart updated", "cart", v)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	v, err := h.uc.RemoveItem(c.Request().Context(), identityFrom(c), c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Item removed from cart", "cart", v)
}

func (h *CartHandler) setAddress(c echo.Context) error {
	var req cartAddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	v, err := h.uc.SetDeliveryAddress(c.Request().Context(), identityFrom(c), req.Address)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Delivery address updated", "cart", v)
}

func (h *CartHandler) clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), identityFrom(c)); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Cart cleared", "", nil)
}
