// Package server はechoの組み立てと起動・停止。
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/handler"
	"github.com/maheshmohan7319/GOODINSIDE/internal/middleware"
	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg    config.Config
	echo   *echo.Echo
	logger *zap.Logger
}

// New は共通ミドルウェアとエラーハンドラを載せたechoを作る
func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(logger))

	return &Server{cfg: cfg, echo: e, logger: logger}
}

func (s *Server) Echo() *echo.Echo { return s.echo }

// Run はctxがキャンセルされるまで待ち受け、その後graceful shutdownする
func (s *Server) Run(ctx context.Context) error {
	addr := ":" + s.cfg.Port

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// echo自身のエラー（ルート無し、405、panic復帰など）も共通の形にする
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			logger.Error("unhandled error", zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, handler.ErrorResponse{
			Success: false,
			Message: message,
			Error:   kindForStatus(status),
		})
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(usecase.KindValidationFailed)
	case http.StatusUnauthorized:
		return string(usecase.KindUnauthorized)
	case http.StatusForbidden:
		return string(usecase.KindForbidden)
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return string(usecase.KindNotFound)
	case http.StatusConflict:
		return string(usecase.KindConflictFailed)
	}
	return string(usecase.KindInternal)
}
