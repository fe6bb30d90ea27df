package db

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
)

// コレクション名
const (
	CollUsers      = "users"
	CollCategories = "categories"
	CollProducts   = "products"
	CollAddresses  = "addresses"
	CollCarts      = "carts"
	CollOrders     = "orders"
	CollAuditLogs  = "audit_logs"
)

// ConnectMongo は接続してpingまで行う
func ConnectMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetTimeout(cfg.MongoTimeout).
		SetServerSelectionTimeout(cfg.MongoTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}
	return client, nil
}

type indexSpec struct {
	coll   string
	keys   bson.D
	unique bool
}

var indexes = []indexSpec{
	{CollUsers, bson.D{{Key: "phone_number", Value: 1}}, true},
	{CollCategories, bson.D{{Key: "name", Value: 1}}, true},
	{CollProducts, bson.D{{Key: "name", Value: 1}}, true},
	{CollProducts, bson.D{{Key: "category_id", Value: 1}}, false},
	{CollCarts, bson.D{{Key: "user_id", Value: 1}}, true},
	// order_numberの一意性はここで担保する
	{CollOrders, bson.D{{Key: "order_number", Value: 1}}, true},
	{CollOrders, bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
	{CollAddresses, bson.D{{Key: "user_id", Value: 1}}, false},
	{CollAuditLogs, bson.D{{Key: "created_at", Value: -1}}, false},
}

// EnsureIndexes は一意・検索用インデックスを作る（何度呼んでもよい）
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, ix := range indexes {
		model := mongo.IndexModel{Keys: ix.keys}
		if ix.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := database.Collection(ix.coll).Indexes().CreateOne(ctx, model); err != nil {
			return errors.Wrapf(err, "create index on %s", ix.coll)
		}
	}
	return nil
}
