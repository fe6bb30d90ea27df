package repository

import (
	"context"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, c model.Category) (model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	// activeOnly=trueなら有効なものだけ
	List(ctx context.Context, activeOnly bool) ([]model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id string) error
}
