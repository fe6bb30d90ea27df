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

type addressMongoRepository struct {
	coll *mongo.Collection
}

func NewAddressMongoRepository(database *mongo.Database) repo.AddressRepository {
	return &addressMongoRepository{coll: database.Collection(db.CollAddresses)}
}

func (r *addressMongoRepository) Create(ctx context.Context, address model.Address) (model.Address, error) {
	if _, err := r.coll.InsertOne(ctx, address); err != nil {
		return model.Address{}, mongoErr(err, "insert address")
	}
	return address, nil
}

func (r *addressMongoRepository) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	list := []model.Address{}
	opts := options.Find().SetSort(bson.D{{Key: "is_default", Value: -1}, {Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mongoErr(err, "list addresses")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode addresses")
	}
	return list, nil
}

func (r *addressMongoRepository) FindByID(ctx context.Context, addressID string) (model.Address, error) {
	var a model.Address
	if err := r.coll.FindOne(ctx, bson.M{"_id": addressID}).Decode(&a); err != nil {
		return model.Address{}, mongoErr(err, "find address")
	}
	return a, nil
}

func (r *addressMongoRepository) FindByIDs(ctx context.Context, addressIDs []string) ([]model.Address, error) {
	list := []model.Address{}
	if len(addressIDs) == 0 {
		return list, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": addressIDs}})
	if err != nil {
		return nil, mongoErr(err, "find addresses")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode addresses")
	}
	return list, nil
}

func (r *addressMongoRepository) Update(ctx context.Context, address model.Address) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": address.ID}, bson.M{"$set": bson.M{
		"name":        address.Name,
		"phone":       address.Phone,
		"line1":       address.Line1,
		"line2":       address.Line2,
		"city":        address.City,
		"state":       address.State,
		"postal_code": address.PostalCode,
		"landmark":    address.Landmark,
		"latitude":    address.Latitude,
		"longitude":   address.Longitude,
		"updated_at":  address.UpdatedAt,
	}})
	if err != nil {
		return mongoErr(err, "update address")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *addressMongoRepository) Delete(ctx context.Context, addressID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": addressID})
	if err != nil {
		return mongoErr(err, "delete address")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *addressMongoRepository) IsOwnedByUser(ctx context.Context, addressID, userID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": addressID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, mongoErr(err, "count address")
	}
	return n == 1, nil
}

// 他のdefaultを外してから指定住所をdefaultにする
// （トランザクションは使わない。途中失敗ではdefaultが0件になりうる）
func (r *addressMongoRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	owned, err := r.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return repo.ErrNotFound
	}

	if _, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_default": true, "_id": bson.M{"$ne": addressID}},
		bson.M{"$set": bson.M{"is_default": false}},
	); err != nil {
		return mongoErr(err, "unset default address")
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": addressID, "user_id": userID},
		bson.M{"$set": bson.M{"is_default": true}},
	)
	if err != nil {
		return mongoErr(err, "set default address")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
