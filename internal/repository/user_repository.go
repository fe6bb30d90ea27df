package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（電話番号重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//まとめて取得（見つからないIDは無視）
	FindByIDs(ctx context.Context, userIDs []string) ([]model.User, error)
	//電話番号からユーザーを一件取得する。
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	//全ユーザー（管理者用）
	List(ctx context.Context) ([]model.User, error)
	// ユーザー情報の更新=>アクティブかどうか・ロール・プロフィール・パスワード
	Update(ctx context.Context, user *model.User) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID string) error
}
