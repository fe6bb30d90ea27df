package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/db"
)

type CartMongoRepository struct {
	coll *mongo.Collection
}

func NewCartMongoRepository(database *mongo.Database) *CartMongoRepository {
	return &CartMongoRepository{coll: database.Collection(db.CollCarts)}
}

func (r *CartMongoRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var c model.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c); err != nil {
		return model.Cart{}, mongoErr(err, "find cart")
	}
	return c, nil
}

// user_idでupsert。_idとcreated_atは初回のみ
func (r *CartMongoRepository) Save(ctx context.Context, cart model.Cart) error {
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	update := bson.M{
		"$set": bson.M{
			"items":           cart.Items,
			"delivery_charge": cart.DeliveryCharge,
			"distance":        cart.Distance,
			"address_id":      cart.AddressID,
			"updated_at":      cart.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        cart.ID,
			"created_at": cart.CreatedAt,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, update, options.Update().SetUpsert(true))
	return mongoErr(err, "save cart")
}

// 無ければ0件（エラーにしない）
func (r *CartMongoRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, mongoErr(err, "delete cart")
	}
	return res.DeletedCount, nil
}
