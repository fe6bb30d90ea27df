package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "start the HTTP server",
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.ensureSchema(ctx); err != nil {
		a.logger.Error("ensure schema failed", zap.Error(err))
		return err
	}
	a.logger.Info("schema ensured", zap.String("db_driver", a.cfg.DBDriver))

	if err := a.openStorage(ctx); err != nil {
		a.logger.Error("open storage failed", zap.Error(err))
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	srv := a.newServer()
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create tables (postgres) or indexes (mongo)",
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ensureSchema(c.Context); err != nil {
				a.logger.Error("migrate failed", zap.Error(err))
				return err
			}
			a.logger.Info("migrate completed", zap.String("db_driver", a.cfg.DBDriver))
			return nil
		},
	}
}

func createAdminCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "create an admin account or promote an existing user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "phone", Usage: "phone number", Required: true},
			&cli.StringFlag{Name: "password", Usage: "password (min 8 chars)", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			return createAdmin(c.Context, c.String("phone"), c.String("password"))
		},
	}
}

func createAdmin(ctx context.Context, phone, password string) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, created, err := a.authUsecase().CreateAdmin(ctx, phone, password)
	if err != nil {
		a.logger.Error("create admin failed", zap.Error(err))
		return err
	}

	msg := "admin promoted"
	if created {
		msg = "admin created"
	}
	a.logger.Info(msg, zap.String("user_id", user.ID), zap.String("phone", user.PhoneNumber))
	return nil
}
