package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/middleware"
	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// 失敗時の共通レスポンス
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// 成功時は {"success":true,"message":...,<key>:payload}
func writeOK(c echo.Context, status int, message, key string, payload any) error {
	body := echo.Map{"success": true, "message": message}
	if key != "" {
		body[key] = payload
	}
	return c.JSON(status, body)
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Success: false, Message: he.Message, Error: string(he.Kind)})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: "internal server error",
		Error:   string(usecase.KindInternal),
	})
}

func badRequest(c echo.Context, msg string) error {
	return writeError(c, usecase.ErrValidation(msg))
}

// AuthJWT/TokenVersionGuardが入れた値から呼び出し元を作る。無ければ匿名
func identityFrom(c echo.Context) usecase.Identity {
	userID, _ := c.Get(middleware.CtxUserIDKey).(string)
	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	if userID == "" {
		return usecase.Identity{}
	}
	return usecase.Identity{UserID: userID, Role: model.Role(role)}
}
