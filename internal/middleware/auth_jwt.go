package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
)

const (
	CtxUserIDKey       = "user_id"       // string
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
)

var errInvalidToken = errors.New("invalid token")

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, unauthorized())
			}
			if err := verifyAndSet(c, cfg.JWTSecret, authz); err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorized())
			}
			return next(c)
		}
	}
}

// ヘッダが無ければ匿名で通す。付いていて不正なら401
func OptionalAuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return next(c)
			}
			if err := verifyAndSet(c, cfg.JWTSecret, authz); err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorized())
			}
			return next(c)
		}
	}
}

func verifyAndSet(c echo.Context, secret, authz string) error {
	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errInvalidToken
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return errInvalidToken
	}

	//JWTをパースして検証する（HS256のみ）
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return errInvalidToken
	}

	//claimsを取り出す
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errInvalidToken
	}

	userID, err := parseString(claims["sub"])
	if err != nil || userID == "" {
		return errInvalidToken
	}

	//roleを取り出す（Customer/Admin）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return errInvalidToken
	}

	//token_versionを取り出す
	tv, err := parseInt(claims["tv"])
	if err != nil || tv < 0 {
		return errInvalidToken
	}

	//contextへ保存
	c.Set(CtxUserIDKey, userID)
	c.Set(CtxUserRoleKey, role)
	c.Set(CtxTokenVersionKey, tv)
	return nil
}

// handlerと同じ形のエラーJSON
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func errorJSON(kind, msg string) errorResponse {
	return errorResponse{Success: false, Message: msg, Error: kind}
}

func unauthorized() errorResponse {
	return errorJSON("Unauthorized", "unauthorized")
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

func parseInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case string:
		i64, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			return 0, err
		}
		return int(i64), nil
	default:
		return 0, errors.New("invalid int")
	}
}
