package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, gormErr(err, "find cart")
	}
	return cart, nil
}

// user_idが衝突したら中身を上書き（1ユーザー1カート）
func (r *CartGormRepository) Save(ctx context.Context, cart model.Cart) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items", "delivery_charge", "distance", "address_id", "updated_at"}),
		}).
		Create(&cart).Error
	return gormErr(err, "save cart")
}

// 無ければ0件（エラーにしない）
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Cart{})
	if res.Error != nil {
		return 0, gormErr(res.Error, "delete cart")
	}
	return res.RowsAffected, nil
}
