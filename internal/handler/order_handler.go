package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// priceは互換のため受け取るだけ（保存されるのはカタログの価格）
type orderItemRequest struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
	Price    *int64 `json:"price,omitempty"`
}

type orderCreateRequest struct {
	Items         []orderItemRequest `json:"items"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"paymentMethod"`
	TransactionID string             `json:"transactionId"`
}

type orderUpdateRequest struct {
	Status *string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	orders := e.Group("/orders", g.Auth...)

	orders.POST("", h.create)
	orders.GET("", h.list)
	orders.GET("/:id", h.detail)
	orders.PUT("/:id", h.update)
	orders.DELETE("/:id", h.delete)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	items := make([]usecase.PlaceOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), identityFrom(c), usecase.PlaceOrderInput{
		Items:         items,
		AddressID:     req.Address,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, "Order created successfully", "order", order)
}

func (h *OrderHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return badRequest(c, "invalid page")
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return badRequest(c, "invalid limit")
	}

	out, err := h.uc.List(c.Request().Context(), identityFrom(c), usecase.ListOrdersInput{
		Status: c.QueryParam("status"),
		UserID: c.QueryParam("user"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Orders fetched successfully",
		"orders":  out.Orders,
		"total":   out.Total,
		"page":    out.Page,
		"limit":   out.Limit,
	})
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Order fetched successfully", "order", out)
}

func (h *OrderHandler) update(c echo.Context) error {
	var req orderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), identityFrom(c), c.Param("id"), usecase.UpdateOrderInput{
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Order updated successfully", "order", order)
}

func (h *OrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Order deleted successfully", "", nil)
}

// 未指定は0（usecase側で既定値）
func queryInt(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
