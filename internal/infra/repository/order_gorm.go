package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// scopeを条件に足す
func scoped(q *gorm.DB, scope repo.OrderScope) *gorm.DB {
	if scope.Unrestricted() {
		return q
	}
	return q.Where("user_id = ?", scope.UserID)
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	return gormErr(r.db.WithContext(ctx).Create(&order).Error, "create order")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, scope repo.OrderScope, orderID string) (model.Order, error) {
	var o model.Order
	q := scoped(r.db.WithContext(ctx).Where("id = ?", orderID), scope)
	if err := q.First(&o).Error; err != nil {
		return model.Order{}, gormErr(err, "find order")
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	f = f.Normalized()

	q := scoped(r.db.WithContext(ctx).Model(&model.Order{}), f.Scope)

	//status 絞り込み
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	//user_id 絞り込み（管理者のみ）
	if f.UserID != "" && f.Scope.Unrestricted() {
		q = q.Where("user_id = ?", f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, gormErr(err, "count orders")
	}

	items := []model.Order{}
	if err := q.Order("created_at desc").Limit(f.Limit).Offset(f.Offset()).Find(&items).Error; err != nil {
		return nil, 0, gormErr(err, "list orders")
	}
	return items, total, nil
}

// ステータスと更新時刻のみ
func (r *OrderGormRepository) Update(ctx context.Context, scope repo.OrderScope, order model.Order) error {
	q := scoped(r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", order.ID), scope)
	res := q.Updates(map[string]interface{}{
		"status":     order.Status,
		"updated_at": order.UpdatedAt,
	})
	if res.Error != nil {
		return gormErr(res.Error, "update order")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, scope repo.OrderScope, orderID string) error {
	q := scoped(r.db.WithContext(ctx).Where("id = ?", orderID), scope)
	res := q.Delete(&model.Order{})
	if res.Error != nil {
		return gormErr(res.Error, "delete order")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
