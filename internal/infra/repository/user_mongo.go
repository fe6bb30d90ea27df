package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/db"
	domainrepo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type userMongoRepository struct {
	coll *mongo.Collection
}

// DI
func NewUserMongoRepository(database *mongo.Database) domainrepo.UserRepository {
	return &userMongoRepository{coll: database.Collection(db.CollUsers)}
}

func (r *userMongoRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return mongoErr(err, "insert user")
}

func (r *userMongoRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mongoErr(err, "find user")
	}
	return &u, nil
}

func (r *userMongoRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	list := []model.User{}
	if len(ids) == 0 {
		return list, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mongoErr(err, "find users")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode users")
	}
	return list, nil
}

func (r *userMongoRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var u model.User
	if err := r.coll.FindOne(ctx, bson.M{"phone_number": phone}).Decode(&u); err != nil {
		return nil, mongoErr(err, "find user by phone")
	}
	return &u, nil
}

func (r *userMongoRepository) List(ctx context.Context) ([]model.User, error) {
	list := []model.User{}
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, mongoErr(err, "list users")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode users")
	}
	return list, nil
}

// token_versionは別操作でのみ変える
func (r *userMongoRepository) Update(ctx context.Context, user *model.User) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"phone_number":  user.PhoneNumber,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"email":         user.Email,
		"name":          user.Name,
		"image":         user.Image,
		"is_active":     user.IsActive,
		"updated_at":    user.UpdatedAt,
	}})
	if err != nil {
		return mongoErr(err, "update user")
	}
	if res.MatchedCount == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

func (r *userMongoRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"token_version": 1}})
	if err != nil {
		return mongoErr(err, "increment token version")
	}
	if res.MatchedCount == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}
