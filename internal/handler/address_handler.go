package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

type AddressHandler struct {
	uc *usecase.AddressUsecase
}

func NewAddressHandler(uc *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	a := e.Group("/addresses", g.Auth...)

	a.GET("", h.List)
	a.POST("", h.Create)
	a.PUT("/:id", h.Update)
	a.DELETE("/:id", h.Delete)
	a.POST("/:id/default", h.SetDefault)
}

func (h *AddressHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context(), identityFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Addresses fetched successfully", "addresses", list)
}

func (h *AddressHandler) Create(c echo.Context) error {
	var req usecase.AddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	created, err := h.uc.Create(c.Request().Context(), identityFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusCreated, "Address created successfully", "address", created)
}

func (h *AddressHandler) Update(c echo.Context) error {
	var req usecase.AddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	updated, err := h.uc.Update(c.Request().Context(), identityFrom(c), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Address updated successfully", "address", updated)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Address deleted successfully", "", nil)
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	if err := h.uc.SetDefault(c.Request().Context(), identityFrom(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Default address updated", "", nil)
}
