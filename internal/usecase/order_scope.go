package usecase

import (
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

// 注文の参照範囲はロールとユーザーIDだけで決まる
// Admin: 全件 / それ以外: 自分の注文のみ（他人の注文はNotFound扱い）
func OrderScopeFor(role model.Role, userID string) repo.OrderScope {
	if role == model.RoleAdmin && userID != "" {
		return repo.OrderScope{All: true}
	}
	return repo.OrderScope{UserID: userID}
}

func scopeOf(id Identity) repo.OrderScope {
	return OrderScopeFor(id.Role, id.UserID)
}
