package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// user_idでupsert
	Save(ctx context.Context, cart model.Cart) error
	// 削除件数を返す。カートが無ければ0（エラーではない）
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
}
