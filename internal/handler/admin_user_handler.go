package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

type AdminUserHandler struct {
	uc *usecase.AuthUsecase
}

func NewAdminUserHandler(uc *usecase.AuthUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	// /admin 配下は JWT必須 + token_version一致 + ADMIN限定
	admin := e.Group("/admin", g.Admin...)

	admin.POST("/users/:id/force-logout", h.ForceLogout)
}

func (h *AdminUserHandler) ForceLogout(c echo.Context) error {
	userID := strings.TrimSpace(c.Param("id"))
	if userID == "" {
		return badRequest(c, "invalid user_id")
	}

	if err := h.uc.ForceLogout(c.Request().Context(), identityFrom(c), userID); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "User logged out from all sessions", "", nil)
}
