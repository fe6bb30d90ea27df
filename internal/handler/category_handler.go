package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.GET("/categories", h.list, g.Optional...)
	e.GET("/categories/:id", h.detail, g.Optional...)

	// 管理者のみ
	e.POST("/categories", h.create, g.Admin...)
	e.PUT("/categories/:id", h.update, g.Admin...)
	e.DELETE("/categories/:id", h.delete, g.Admin...)
}

func (h *CategoryHandler) list(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context(), identityFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Categories fetched successfully", "categories", list)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	cat, err := h.uc.Get(c.Request().Context(), identityFrom(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Category fetched successfully", "category", cat)
}

func (h *CategoryHandler) create(c echo.Context) error {
	in, closeImage, err := categoryInputFrom(c)
	defer closeImage()
	if err != nil {
		return writeError(c, err)
	}

	cat, err := h.uc.Create(c.Request().Context(), identityFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, "Category created successfully", "category", cat)
}

func (h *CategoryHandler) update(c echo.Context) error {
	in, closeImage, err := categoryInputFrom(c)
	defer closeImage()
	if err != nil {
		return writeError(c, err)
	}

	cat, err := h.uc.Update(c.Request().Context(), identityFrom(c), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Category updated successfully", "category", cat)
}

func (h *CategoryHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Category deleted successfully", "", nil)
}

func categoryInputFrom(c echo.Context) (usecase.CategoryInput, func(), error) {
	f, err := readForm(c)
	if err != nil {
		return usecase.CategoryInput{}, func() {}, usecase.ErrValidation("invalid form")
	}

	in := usecase.CategoryInput{
		Name:        f.str("name"),
		Description: f.str("description"),
	}
	if in.IsActive, err = f.bool("isActive"); err != nil {
		return in, func() {}, err
	}

	img, closeImage, err := formImage(c, "image")
	if err != nil {
		return in, closeImage, err
	}
	in.Image = img
	return in, closeImage, nil
}
