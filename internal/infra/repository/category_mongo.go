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

type categoryMongoRepository struct {
	coll *mongo.Collection
}

func NewCategoryMongoRepository(database *mongo.Database) repo.CategoryRepository {
	return &categoryMongoRepository{coll: database.Collection(db.CollCategories)}
}

func (r *categoryMongoRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return model.Category{}, mongoErr(err, "insert category")
	}
	return c, nil
}

func (r *categoryMongoRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return model.Category{}, mongoErr(err, "find category")
	}
	return c, nil
}

func (r *categoryMongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, mongoErr(err, "count category")
	}
	return n > 0, nil
}

func (r *categoryMongoRepository) List(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	list := []model.Category{}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, mongoErr(err, "list categories")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode categories")
	}
	return list, nil
}

func (r *categoryMongoRepository) Update(ctx context.Context, c model.Category) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"name":        c.Name,
		"description": c.Description,
		"image":       c.Image,
		"is_active":   c.IsActive,
		"updated_by":  c.UpdatedBy,
		"updated_at":  c.UpdatedAt,
	}})
	if err != nil {
		return mongoErr(err, "update category")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *categoryMongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoErr(err, "delete category")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
