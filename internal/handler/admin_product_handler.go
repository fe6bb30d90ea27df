package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// 商品の作成・更新・削除。multipart（画像は image）
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/products", h.createProduct, g.Admin...)
	e.PUT("/products/:id", h.updateProduct, g.Admin...)
	e.DELETE("/products/:id", h.deleteProduct, g.Admin...)
}

func (h *AdminProductHandler) createProduct(c echo.Context) error {
	in, closeImage, err := productInputFrom(c)
	defer closeImage()
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Create(c.Request().Context(), identityFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, "Product created successfully", "product", p)
}

func (h *AdminProductHandler) updateProduct(c echo.Context) error {
	in, closeImage, err := productInputFrom(c)
	defer closeImage()
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Update(c.Request().Context(), identityFrom(c), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Product updated successfully", "product", p)
}

func (h *AdminProductHandler) deleteProduct(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Product deleted successfully", "", nil)
}

func productInputFrom(c echo.Context) (usecase.ProductInput, func(), error) {
	noop := func() {}

	f, err := readForm(c)
	if err != nil {
		return usecase.ProductInput{}, noop, usecase.ErrValidation("invalid form")
	}

	in := usecase.ProductInput{
		Name:        f.str("name"),
		Description: f.str("description"),
		CategoryID:  f.str("category"),
	}
	if in.SalePrice, err = f.int64("salePrice"); err != nil {
		return in, noop, err
	}
	if in.OfferPrice, err = f.int64("offerPrice"); err != nil {
		return in, noop, err
	}
	if in.PurchasePrice, err = f.int64("purchasePrice"); err != nil {
		return in, noop, err
	}
	if in.TaxPercentage, err = f.float("taxPercentage"); err != nil {
		return in, noop, err
	}
	if in.IsTaxInclusive, err = f.bool("isTaxInclusive"); err != nil {
		return in, noop, err
	}
	if in.IsActive, err = f.bool("isActive"); err != nil {
		return in, noop, err
	}
	if in.IsCombo, err = f.bool("isCombo"); err != nil {
		return in, noop, err
	}
	if in.Ingredients, err = f.list("ingredients"); err != nil {
		return in, noop, err
	}

	img, closeImage, err := formImage(c, "image")
	if err != nil {
		return in, closeImage, err
	}
	in.Image = img
	return in, closeImage, nil
}
