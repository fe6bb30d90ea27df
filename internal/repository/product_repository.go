package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	ActiveOnly bool
	CategoryID string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	//まとめて取得（見つからないIDは無視）
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindByName(ctx context.Context, name string) (model.Product, error)
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	//カテゴリを参照している商品数
	CountByCategoryID(ctx context.Context, categoryID string) (int64, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
}
