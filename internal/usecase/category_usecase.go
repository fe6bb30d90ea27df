package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/infra/storage"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

const categoryImageFolder = "categories"

type CategoryUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
	images     storage.ImageStore

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

// DI
func NewCategoryUsecase(
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	images storage.ImageStore,
	logger *zap.Logger,
) *CategoryUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryUsecase{
		categories: categories,
		products:   products,
		images:     images,
		logger:     logger,
		now:        systemClock,
		newID:      newUUID,
	}
}

// nilは変更なし
type CategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
	Image       *ImageUpload
}

// 匿名は有効なものだけ
func (u *CategoryUsecase) List(ctx context.Context, id Identity) ([]model.Category, error) {
	list, err := u.categories.List(ctx, id.IsAnonymous())
	if err != nil {
		return nil, u.internal("list categories", err)
	}
	return list, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id Identity, categoryID string) (model.Category, error) {
	c, err := u.find(ctx, categoryID)
	if err != nil {
		return model.Category{}, err
	}
	if id.IsAnonymous() && !c.IsActive {
		return model.Category{}, ErrNotFound("Category not found")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, id Identity, in CategoryInput) (model.Category, error) {
	if err := requireAdmin(id); err != nil {
		return model.Category{}, err
	}

	name := ""
	if in.Name != nil {
		name = sanitizeText(*in.Name)
	}
	if name == "" {
		return model.Category{}, ErrValidation("name is required")
	}

	now := u.now()
	c := model.Category{
		ID:        u.newID(),
		Name:      name,
		IsActive:  true,
		CreatedBy: id.UserID,
		UpdatedBy: id.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		c.Description = sanitizeText(*in.Description)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}

	if in.Image.present() {
		url, err := uploadImage(ctx, u.images, categoryImageFolder, in.Image)
		if err != nil {
			return model.Category{}, u.internal("upload category image", err)
		}
		c.Image = url
	}

	created, err := u.categories.Create(ctx, c)
	if err != nil {
		deleteImage(ctx, u.images, u.logger, c.Image)
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Category{}, ErrConflict("Category name already exists")
		}
		return model.Category{}, u.internal("create category", err)
	}
	return created, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id Identity, categoryID string, in CategoryInput) (model.Category, error) {
	if err := requireAdmin(id); err != nil {
		return model.Category{}, err
	}

	c, err := u.find(ctx, categoryID)
	if err != nil {
		return model.Category{}, err
	}

	if in.Name != nil {
		name := sanitizeText(*in.Name)
		if name == "" {
			return model.Category{}, ErrValidation("name must not be empty")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = sanitizeText(*in.Description)
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}

	oldImage := ""
	if in.Image.present() {
		url, err := uploadImage(ctx, u.images, categoryImageFolder, in.Image)
		if err != nil {
			return model.Category{}, u.internal("upload category image", err)
		}
		oldImage = c.Image
		c.Image = url
	}

	c.UpdatedBy = id.UserID
	c.UpdatedAt = u.now()

	if err := u.categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return model.Category{}, ErrConflict("Category name already exists")
		case errors.Is(err, repo.ErrNotFound):
			return model.Category{}, ErrNotFound("Category not found")
		}
		return model.Category{}, u.internal("update category", err)
	}

	deleteImage(ctx, u.images, u.logger, oldImage)
	return c, nil
}

// 商品から参照されていれば削除しない
func (u *CategoryUsecase) Delete(ctx context.Context, id Identity, categoryID string) error {
	if err := requireAdmin(id); err != nil {
		return err
	}

	c, err := u.find(ctx, categoryID)
	if err != nil {
		return err
	}

	n, err := u.products.CountByCategoryID(ctx, c.ID)
	if err != nil {
		return u.internal("count products by category", err)
	}
	if n > 0 {
		return ErrConflict("Category is used by products")
	}

	if err := u.categories.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("Category not found")
		}
		return u.internal("delete category", err)
	}

	deleteImage(ctx, u.images, u.logger, c.Image)
	return nil
}

func (u *CategoryUsecase) find(ctx context.Context, categoryID string) (model.Category, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return model.Category{}, ErrValidation("invalid id")
	}
	c, err := u.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, ErrNotFound("Category not found")
	}
	if err != nil {
		return model.Category{}, u.internal("find category", err)
	}
	return c, nil
}

func (u *CategoryUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}
