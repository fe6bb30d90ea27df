package main

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/delivery"
	"github.com/maheshmohan7319/GOODINSIDE/internal/handler"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/db"
	infraRepo "github.com/maheshmohan7319/GOODINSIDE/internal/infra/repository"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/storage"
	"github.com/maheshmohan7319/GOODINSIDE/internal/logger"
	"github.com/maheshmohan7319/GOODINSIDE/internal/server"
	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
	"github.com/maheshmohan7319/GOODINSIDE/internal/validator"
)

// 起動時に組み立てる依存一式
type app struct {
	cfg    config.Config
	logger *zap.Logger

	mongoDB *mongo.Database
	gormDB  *gorm.DB
	repos   infraRepo.Repositories
	images  storage.ImageStore

	closers []func()
}

// 設定・ロガー・DB接続まで
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mongoDB = client.Database(cfg.MongoDatabase)
		a.closers = append(a.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn("mongo disconnect error", zap.Error(err))
			}
		})
	case config.DriverPostgres:
		gdb, err := db.ConnectPostgres(cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.gormDB = gdb
		a.closers = append(a.closers, func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
	}

	a.repos, err = infraRepo.NewRepositories(cfg.DBDriver, a.mongoDB, a.gormDB)
	if err != nil {
		a.Close()
		return nil, err
	}

	log.Info("bootstrap completed",
		zap.String("db_driver", cfg.DBDriver),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("env", cfg.GoEnv),
	)
	return a, nil
}

// 画像ストア。serveの時だけ開く
func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.StorageDriver {
	case config.StorageGCS:
		gcs, err := storage.NewGCSStore(ctx, a.cfg.GCSBucket, a.cfg.GCSCredentialsFile)
		if err != nil {
			return err
		}
		a.images = gcs
		a.closers = append(a.closers, func() {
			if err := gcs.Close(); err != nil {
				a.logger.Warn("gcs close error", zap.Error(err))
			}
		})
	default:
		local, err := storage.NewLocalStore(a.cfg.UploadDir, a.cfg.UploadBaseURL)
		if err != nil {
			return err
		}
		a.images = local
	}
	return nil
}

// テストで差し替える
var (
	ensureMongoIndexes = db.EnsureIndexes
	autoMigrate        = db.AutoMigrate
)

// postgresはテーブル、mongoはインデックス。何度呼んでもよい
func (a *app) ensureSchema(ctx context.Context) error {
	switch a.cfg.DBDriver {
	case config.DriverMongo:
		return ensureMongoIndexes(ctx, a.mongoDB)
	case config.DriverPostgres:
		return autoMigrate(a.gormDB)
	}
	return fmt.Errorf("unsupported db driver %q", a.cfg.DBDriver)
}

// 開いた順の逆に閉じる
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) authUsecase() *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		a.cfg,
		a.repos.Users,
		a.repos.AuditLogs,
		a.images,
		validator.NewAuthValidator(),
		nil,
		a.logger.Named("auth"),
	)
}

// 全usecaseとハンドラをつないでルート登録まで
func (a *app) newServer() *server.Server {
	r := a.repos
	lat, lng := a.cfg.StoreLocation()
	estimator := delivery.NewEstimator(lat, lng)

	authUC := a.authUsecase()
	categoryUC := usecase.NewCategoryUsecase(r.Categories, r.Products, a.images, a.logger.Named("category"))
	productUC := usecase.NewProductUsecase(r.Products, r.Categories, a.images, a.logger.Named("product"))
	addressUC := usecase.NewAddressUsecase(r.Addresses, a.logger.Named("address"))
	cartUC := usecase.NewCartUsecase(r.Carts, r.Products, r.Addresses, estimator, a.cfg.DeliveryChargePerKm, a.logger.Named("cart"))
	orderUC := usecase.NewOrderUsecase(
		r.Orders,
		r.Products,
		r.Addresses,
		r.Carts,
		r.Users,
		r.AuditLogs,
		estimator,
		a.logger.Named("order"),
		usecase.WithPermissiveStatus(a.cfg.OrderStatusPermissive),
	)

	srv := server.New(a.cfg, a.logger.Named("http"))
	srv.RegisterRoutes(handler.NewGuards(a.cfg, r.Users), server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		AdminUser:    handler.NewAdminUserHandler(authUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Address:      handler.NewAddressHandler(addressUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
	})
	return srv
}
