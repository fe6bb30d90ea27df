package db

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// ConnectPostgres はDBに接続して *gorm.DB を返す。
// 一意制約違反は gorm.ErrDuplicatedKey に変換される
func ConnectPostgres(cfg config.Config) (*gorm.DB, error) {
	// DSNの誤りはここで落とす
	connCfg, err := pgx.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres dsn")
	}
	sqlDB := stdlib.OpenDB(*connCfg)

	gcfg := &gorm.Config{TranslateError: true}
	if cfg.IsProd() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "open gorm")
	}
	return gdb, nil
}

// テーブル作成
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Address{},
		&model.Cart{},
		&model.Order{},
		&model.AuditLog{},
	)
}
