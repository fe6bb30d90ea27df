package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	//Create は住所を新規作成する。
	//作成後はaddress（IDなどが埋まったもの）を返す
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID string) ([]model.Address, error)

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID string) (model.Address, error)

	//まとめて取得（見つからないIDは無視）
	FindByIDs(ctx context.Context, addressIDs []string) ([]model.Address, error)

	//住所の更新。
	Update(ctx context.Context, address model.Address) error

	//住所の削除。
	Delete(ctx context.Context, addressID string) error

	//住所がそのユーザーのものか」を確認
	IsOwnedByUser(ctx context.Context, addressID, userID string) (bool, error)

	//住所の切り替えを行う。
	SetDefault(ctx context.Context, userID, addressID string) error
}
