package usecase

import (
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

// 検証済みトークンから取り出した呼び出し元（匿名ならUserIDが空）
type Identity struct {
	UserID string
	Role   model.Role
}

func (i Identity) IsAnonymous() bool { return i.UserID == "" }

func (i Identity) IsAdmin() bool { return !i.IsAnonymous() && i.Role == model.RoleAdmin }

func requireUser(id Identity) error {
	if id.IsAnonymous() {
		return ErrUnauthorized("unauthorized")
	}
	return nil
}

func requireAdmin(id Identity) error {
	if err := requireUser(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return ErrForbidden("admin only")
	}
	return nil
}
