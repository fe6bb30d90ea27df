package repository

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

// gormのエラーを共通エラーへ
func gormErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrDuplicate
	}
	return errors.Wrap(err, op)
}

// mongoのエラーを共通エラーへ
func mongoErr(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return repo.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repo.ErrDuplicate
	}
	return errors.Wrap(err, op)
}
