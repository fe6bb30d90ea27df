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

type auditLogMongoRepository struct {
	coll *mongo.Collection
}

func NewAuditLogMongoRepository(database *mongo.Database) repo.AuditLogRepository {
	return &auditLogMongoRepository{coll: database.Collection(db.CollAuditLogs)}
}

func (r *auditLogMongoRepository) Create(ctx context.Context, log model.AuditLog) error {
	_, err := r.coll.InsertOne(ctx, log)
	return mongoErr(err, "insert audit log")
}

func (r *auditLogMongoRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := bson.M{}
	if filter.ActorUserID != "" {
		q["actor_user_id"] = filter.ActorUserID
	}
	if filter.Action != nil {
		q["action"] = *filter.Action
	}
	if filter.ResourceType != nil {
		q["resource_type"] = *filter.ResourceType
	}
	if filter.ResourceID != "" {
		q["resource_id"] = filter.ResourceID
	}
	created := bson.M{}
	if filter.CreatedFrom != nil {
		created["$gte"] = *filter.CreatedFrom
	}
	if filter.CreatedTo != nil {
		created["$lte"] = *filter.CreatedTo
	}
	if len(created) > 0 {
		q["created_at"] = created
	}

	limit, offset := auditPage(filter)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, mongoErr(err, "list audit logs")
	}
	logs := []model.AuditLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, mongoErr(err, "decode audit logs")
	}
	return logs, nil
}
