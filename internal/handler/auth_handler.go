package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	a := e.Group("/auth")

	a.POST("/register", h.Register)
	a.POST("/login", h.Login)

	a.GET("/user", h.GetUser, g.Auth...)
	a.PUT("/changePassword", h.ChangePassword, g.Auth...)
	a.PUT("/updateProfile", h.UpdateProfile, g.Auth...)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	res, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, authBody("User registered successfully", res))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	res, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, authBody("Login successful", res))
}

// 管理者は一覧、それ以外は自分だけ
func (h *AuthHandler) GetUser(c echo.Context) error {
	res, err := h.uc.GetUser(c.Request().Context(), identityFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	if res.User != nil {
		return writeOK(c, http.StatusOK, "User fetched successfully", "user", res.User)
	}
	return writeOK(c, http.StatusOK, "Users fetched successfully", "users", res.Users)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req usecase.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), identityFrom(c), req); err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Password updated successfully", "", nil)
}

// multipart: email, name, image
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	img, closeImage, err := formImage(c, "image")
	defer closeImage()
	if err != nil {
		return writeError(c, err)
	}

	req := usecase.UpdateProfileRequest{
		Email: c.FormValue("email"),
		Name:  c.FormValue("name"),
		Image: img,
	}
	user, err := h.uc.UpdateProfile(c.Request().Context(), identityFrom(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return writeOK(c, http.StatusOK, "Profile updated successfully", "user", user)
}

func authBody(message string, res *usecase.AuthResult) echo.Map {
	return echo.Map{
		"success":   true,
		"message":   message,
		"token":     res.Token,
		"tokenType": res.TokenType,
		"expiresIn": res.ExpiresIn,
		"user":      res.User,
	}
}
