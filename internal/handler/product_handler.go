package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// 商品の参照系（匿名は有効な商品だけ）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/products", h.list, g.Optional...)
	e.GET("/products/:id", h.detail, g.Optional...)
}

// GET /products?category=...
func (h *ProductHandler) list(c echo.Context) error {
	in := usecase.ListProductsInput{CategoryID: c.QueryParam("category")}

	items, err := h.uc.List(c.Request().Context(), identityFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Products fetched successfully", "products", items)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Product fetched successfully", "product", p)
}
