package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/db"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type OrderMongoRepository struct {
	coll *mongo.Collection
}

func NewOrderMongoRepository(database *mongo.Database) *OrderMongoRepository {
	return &OrderMongoRepository{coll: database.Collection(db.CollOrders)}
}

// scopeをfilterに足す
func scopedFilter(filter bson.M, scope repo.OrderScope) bson.M {
	if !scope.Unrestricted() {
		filter["user_id"] = scope.UserID
	}
	return filter
}

// order_numberのユニークインデックス違反はErrDuplicate
func (r *OrderMongoRepository) Create(ctx context.Context, order model.Order) error {
	_, err := r.coll.InsertOne(ctx, order)
	return mongoErr(err, "insert order")
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, scope repo.OrderScope, orderID string) (model.Order, error) {
	var o model.Order
	if err := r.coll.FindOne(ctx, scopedFilter(bson.M{"_id": orderID}, scope)).Decode(&o); err != nil {
		return model.Order{}, mongoErr(err, "find order")
	}
	return o, nil
}

func (r *OrderMongoRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	f = f.Normalized()

	filter := scopedFilter(bson.M{}, f.Scope)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.UserID != "" && f.Scope.Unrestricted() {
		filter["user_id"] = f.UserID
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mongoErr(err, "count orders")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Offset())).
		SetLimit(int64(f.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mongoErr(err, "list orders")
	}
	items := []model.Order{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, mongoErr(err, "decode orders")
	}
	return items, total, nil
}

// ステータスと更新時刻のみ
func (r *OrderMongoRepository) Update(ctx context.Context, scope repo.OrderScope, order model.Order) error {
	res, err := r.coll.UpdateOne(ctx,
		scopedFilter(bson.M{"_id": order.ID}, scope),
		bson.M{"$set": bson.M{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		}},
	)
	if err != nil {
		return mongoErr(err, "update order")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) Delete(ctx context.Context, scope repo.OrderScope, orderID string) error {
	res, err := r.coll.DeleteOne(ctx, scopedFilter(bson.M{"_id": orderID}, scope))
	if err != nil {
		return mongoErr(err, "delete order")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
