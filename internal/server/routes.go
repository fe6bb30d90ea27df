package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/handler"
)

// ルート登録できるハンドラ
type Router interface {
	RegisterRoutes(e *echo.Echo, g handler.Guards)
}

type Handlers struct {
	Auth         *handler.AuthHandler
	AdminUser    *handler.AdminUserHandler
	Category     *handler.CategoryHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Address      *handler.AddressHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
}

func (h Handlers) routers() []Router {
	return []Router{h.Auth, h.AdminUser, h.Category, h.Product, h.AdminProduct, h.Address, h.Cart, h.Order}
}

// RegisterRoutes は全ルートとヘルスチェック、ローカル画像の配信を登録する
func (s *Server) RegisterRoutes(g handler.Guards, h Handlers) {
	e := s.echo

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "ok"})
	})

	if s.cfg.StorageDriver == config.StorageLocal {
		e.Static(s.cfg.UploadBaseURL, s.cfg.UploadDir)
	}

	for _, r := range h.routers() {
		r.RegisterRoutes(e, g)
	}
}
