package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

// DB_DRIVERで選んだ実装一式
type Repositories struct {
	Users      repo.UserRepository
	Categories repo.CategoryRepository
	Products   repo.ProductRepository
	Addresses  repo.AddressRepository
	Carts      repo.CartRepository
	Orders     repo.OrderRepository
	AuditLogs  repo.AuditLogRepository
}

func NewMongoRepositories(database *mongo.Database) Repositories {
	return Repositories{
		Users:      NewUserMongoRepository(database),
		Categories: NewCategoryMongoRepository(database),
		Products:   NewProductMongoRepository(database),
		Addresses:  NewAddressMongoRepository(database),
		Carts:      NewCartMongoRepository(database),
		Orders:     NewOrderMongoRepository(database),
		AuditLogs:  NewAuditLogMongoRepository(database),
	}
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      NewUserGormRepository(db),
		Categories: NewCategoryGormRepository(db),
		Products:   NewProductGormRepository(db),
		Addresses:  NewAddressGormRepository(db),
		Carts:      NewCartGormRepository(db),
		Orders:     NewOrderGormRepository(db),
		AuditLogs:  NewAuditLogGormRepository(db),
	}
}

// driverに応じて組み立てる。使わない側はnilでよい
func NewRepositories(driver string, mongoDB *mongo.Database, gormDB *gorm.DB) (Repositories, error) {
	switch driver {
	case config.DriverMongo:
		if mongoDB == nil {
			return Repositories{}, fmt.Errorf("mongo database is nil")
		}
		return NewMongoRepositories(mongoDB), nil
	case config.DriverPostgres:
		if gormDB == nil {
			return Repositories{}, fmt.Errorf("gorm db is nil")
		}
		return NewGormRepositories(gormDB), nil
	}
	return Repositories{}, fmt.Errorf("unknown db driver: %q", driver)
}

var (
	_ repo.ProductRepository = (*ProductGormRepository)(nil)
	_ repo.ProductRepository = (*ProductMongoRepository)(nil)
	_ repo.CartRepository    = (*CartGormRepository)(nil)
	_ repo.CartRepository    = (*CartMongoRepository)(nil)
	_ repo.OrderRepository   = (*OrderGormRepository)(nil)
	_ repo.OrderRepository   = (*OrderMongoRepository)(nil)
)
