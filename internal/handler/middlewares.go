package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/middleware"
	"github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

// ルートごとの認証チェーン
type Guards struct {
	// JWT必須 + token_version一致
	Auth []echo.MiddlewareFunc
	// トークンがあれば検証、無ければ匿名
	Optional []echo.MiddlewareFunc
	// Auth + 管理者限定
	Admin []echo.MiddlewareFunc
}

func NewGuards(cfg config.Config, users repository.UserRepository) Guards {
	return Guards{
		Auth: []echo.MiddlewareFunc{
			middleware.AuthJWT(cfg),
			middleware.TokenVersionGuard(users),
		},
		Optional: []echo.MiddlewareFunc{
			middleware.OptionalAuthJWT(cfg),
			middleware.OptionalTokenVersionGuard(users),
		},
		Admin: []echo.MiddlewareFunc{
			middleware.AuthJWT(cfg),
			middleware.TokenVersionGuard(users),
			middleware.AdminRoleGuard(),
		},
	}
}
