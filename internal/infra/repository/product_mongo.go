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

type ProductMongoRepository struct {
	coll *mongo.Collection
}

func NewProductMongoRepository(database *mongo.Database) *ProductMongoRepository {
	return &ProductMongoRepository{coll: database.Collection(db.CollProducts)}
}

func (r *ProductMongoRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return model.Product{}, mongoErr(err, "insert product")
	}
	return p, nil
}

func (r *ProductMongoRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return model.Product{}, mongoErr(err, "find product")
	}
	return p, nil
}

func (r *ProductMongoRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	list := []model.Product{}
	if len(ids) == 0 {
		return list, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mongoErr(err, "find products")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode products")
	}
	return list, nil
}

func (r *ProductMongoRepository) FindByName(ctx context.Context, name string) (model.Product, error) {
	var p model.Product
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&p); err != nil {
		return model.Product{}, mongoErr(err, "find product by name")
	}
	return p, nil
}

func (r *ProductMongoRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	filter := bson.M{}
	if q.ActiveOnly {
		filter["is_active"] = true
	}
	if q.CategoryID != "" {
		filter["category_id"] = q.CategoryID
	}
	list := []model.Product{}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, mongoErr(err, "list products")
	}
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoErr(err, "decode products")
	}
	return list, nil
}

func (r *ProductMongoRepository) CountByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return 0, mongoErr(err, "count products")
	}
	return n, nil
}

// _id・作成者・作成日時以外を置き換える
func (r *ProductMongoRepository) Update(ctx context.Context, p model.Product) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":             p.Name,
		"description":      p.Description,
		"sale_price":       p.SalePrice,
		"offer_price":      p.OfferPrice,
		"purchase_price":   p.PurchasePrice,
		"category_id":      p.CategoryID,
		"is_tax_inclusive": p.IsTaxInclusive,
		"tax_percentage":   p.TaxPercentage,
		"is_active":        p.IsActive,
		"image":            p.Image,
		"ingredients":      p.Ingredients,
		"is_combo":         p.IsCombo,
		"updated_by":       p.UpdatedBy,
		"updated_at":       p.UpdatedAt,
	}})
	if err != nil {
		return mongoErr(err, "update product")
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductMongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mongoErr(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
