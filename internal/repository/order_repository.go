package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// 参照できる注文の範囲。Allなら全件（管理者）、それ以外はUserIDの注文だけ
// ゼロ値は何にも一致しない
type OrderScope struct {
	All    bool
	UserID string
}

func (s OrderScope) Unrestricted() bool {
	return s.All
}

type OrderListFilter struct {
	Scope  OrderScope
	Status string
	//管理者のみ有効
	UserID string
	Page   int
	Limit  int
}

type OrderRepository interface {
	//order_number重複はErrDuplicate
	Create(ctx context.Context, order model.Order) error
	// scope外の注文はErrNotFound
	FindByID(ctx context.Context, scope OrderScope, orderID string) (model.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]model.Order, int64, error)
	Update(ctx context.Context, scope OrderScope, order model.Order) error
	Delete(ctx context.Context, scope OrderScope, orderID string) error
}

const (
	DefaultOrderLimit = 50
	MaxOrderLimit     = 100
)

// page/limitの既定値を埋める
func (f OrderListFilter) Normalized() OrderListFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultOrderLimit
	}
	if f.Limit > MaxOrderLimit {
		f.Limit = MaxOrderLimit
	}
	return f
}

func (f OrderListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
