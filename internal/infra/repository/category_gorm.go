package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type categoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func (r *categoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, gormErr(err, "create category")
	}
	return c, nil
}

func (r *categoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.Category{}, gormErr(err, "find category")
	}
	return c, nil
}

func (r *categoryGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, gormErr(err, "count category")
	}
	return count > 0, nil
}

func (r *categoryGormRepository) List(ctx context.Context, activeOnly bool) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Model(&model.Category{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var list []model.Category
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, gormErr(err, "list categories")
	}
	return list, nil
}

func (r *categoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", c.ID).
		Select("name", "description", "image", "is_active", "updated_by", "updated_at").
		Updates(c)
	if res.Error != nil {
		return gormErr(res.Error, "update category")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *categoryGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return gormErr(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
