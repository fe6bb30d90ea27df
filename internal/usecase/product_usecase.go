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

const productImageFolder = "products"

type ProductUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	images     storage.ImageStore

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

// DI
func NewProductUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	images storage.ImageStore,
	logger *zap.Logger,
) *ProductUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductUsecase{
		products:   products,
		categories: categories,
		images:     images,
		logger:     logger,
		now:        systemClock,
		newID:      newUUID,
	}
}

// レスポンス用（割引率つき）
type ProductView struct {
	model.Product
	DiscountPercentage float64 `json:"discountPercentage"`
}

func toProductView(p model.Product) ProductView {
	return ProductView{Product: p, DiscountPercentage: p.DiscountPercentage()}
}

// 部分更新できるようにnilは変更なし
type ProductInput struct {
	Name           *string
	Description    *string
	SalePrice      *int64
	OfferPrice     *int64
	PurchasePrice  *int64
	CategoryID     *string
	IsTaxInclusive *bool
	TaxPercentage  *float64
	IsActive       *bool
	Ingredients    []string
	IsCombo        *bool
	Image          *ImageUpload
}

type ListProductsInput struct {
	CategoryID string
}

// 匿名は有効な商品だけ
func (u *ProductUsecase) List(ctx context.Context, id Identity, in ListProductsInput) ([]ProductView, error) {
	list, err := u.products.List(ctx, repo.ProductListQuery{
		ActiveOnly: id.IsAnonymous(),
		CategoryID: strings.TrimSpace(in.CategoryID),
	})
	if err != nil {
		return nil, u.internal("list products", err)
	}
	out := make([]ProductView, 0, len(list))
	for _, p := range list {
		out = append(out, toProductView(p))
	}
	return out, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id Identity, productID string) (ProductView, error) {
	p, err := u.find(ctx, productID)
	if err != nil {
		return ProductView{}, err
	}
	if id.IsAnonymous() && !p.IsActive {
		return ProductView{}, ErrNotFound("Product not found")
	}
	return toProductView(p), nil
}

func (u *ProductUsecase) Create(ctx context.Context, id Identity, in ProductInput) (ProductView, error) {
	if err := requireAdmin(id); err != nil {
		return ProductView{}, err
	}

	now := u.now()
	p := model.Product{
		ID:          u.newID(),
		IsActive:    true,
		Ingredients: []string{},
		CreatedBy:   id.UserID,
		CreatedAt:   now,
	}
	if err := applyProductInput(&p, in); err != nil {
		return ProductView{}, err
	}
	if p.Name == "" {
		return ProductView{}, ErrValidation("name is required")
	}
	if p.CategoryID == "" {
		return ProductView{}, ErrValidation("category is required")
	}

	if err := u.ensureCategory(ctx, p.CategoryID); err != nil {
		return ProductView{}, err
	}
	if err := u.ensureUniqueName(ctx, p.Name, ""); err != nil {
		return ProductView{}, err
	}

	if in.Image.present() {
		url, err := uploadImage(ctx, u.images, productImageFolder, in.Image)
		if err != nil {
			return ProductView{}, u.internal("upload product image", err)
		}
		p.Image = url
	}

	p.UpdatedBy = id.UserID
	p.UpdatedAt = now

	created, err := u.products.Create(ctx, p)
	if err != nil {
		deleteImage(ctx, u.images, u.logger, p.Image)
		if errors.Is(err, repo.ErrDuplicate) {
			return ProductView{}, ErrConflict("Product name already exists")
		}
		return ProductView{}, u.internal("create product", err)
	}
	return toProductView(created), nil
}

func (u *ProductUsecase) Update(ctx context.Context, id Identity, productID string, in ProductInput) (ProductView, error) {
	if err := requireAdmin(id); err != nil {
		return ProductView{}, err
	}

	p, err := u.find(ctx, productID)
	if err != nil {
		return ProductView{}, err
	}
	prevName, prevCategory := p.Name, p.CategoryID

	if err := applyProductInput(&p, in); err != nil {
		return ProductView{}, err
	}
	if p.Name == "" {
		return ProductView{}, ErrValidation("name must not be empty")
	}
	if p.CategoryID != prevCategory {
		if err := u.ensureCategory(ctx, p.CategoryID); err != nil {
			return ProductView{}, err
		}
	}
	if p.Name != prevName {
		if err := u.ensureUniqueName(ctx, p.Name, p.ID); err != nil {
			return ProductView{}, err
		}
	}

	oldImage := ""
	if in.Image.present() {
		url, err := uploadImage(ctx, u.images, productImageFolder, in.Image)
		if err != nil {
			return ProductView{}, u.internal("upload product image", err)
		}
		oldImage = p.Image
		p.Image = url
	}

	p.UpdatedBy = id.UserID
	p.UpdatedAt = u.now()

	if err := u.products.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return ProductView{}, ErrConflict("Product name already exists")
		case errors.Is(err, repo.ErrNotFound):
			return ProductView{}, ErrNotFound("Product not found")
		}
		return ProductView{}, u.internal("update product", err)
	}

	deleteImage(ctx, u.images, u.logger, oldImage)
	return toProductView(p), nil
}

// 画像を消してから削除
func (u *ProductUsecase) Delete(ctx context.Context, id Identity, productID string) error {
	if err := requireAdmin(id); err != nil {
		return err
	}

	p, err := u.find(ctx, productID)
	if err != nil {
		return err
	}

	deleteImage(ctx, u.images, u.logger, p.Image)

	if err := u.products.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("Product not found")
		}
		return u.internal("delete product", err)
	}
	return nil
}

func applyProductInput(p *model.Product, in ProductInput) error {
	if in.Name != nil {
		p.Name = sanitizeText(*in.Name)
	}
	if in.Description != nil {
		p.Description = sanitizeText(*in.Description)
	}
	if in.SalePrice != nil {
		if *in.SalePrice < 0 {
			return ErrValidation("salePrice must be >= 0")
		}
		p.SalePrice = *in.SalePrice
	}
	if in.OfferPrice != nil {
		if *in.OfferPrice < 0 {
			return ErrValidation("offerPrice must be >= 0")
		}
		p.OfferPrice = *in.OfferPrice
	}
	if in.PurchasePrice != nil {
		if *in.PurchasePrice < 0 {
			return ErrValidation("purchasePrice must be >= 0")
		}
		p.PurchasePrice = *in.PurchasePrice
	}
	if in.CategoryID != nil {
		p.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.IsTaxInclusive != nil {
		p.IsTaxInclusive = *in.IsTaxInclusive
	}
	if in.TaxPercentage != nil {
		if *in.TaxPercentage < 0 || *in.TaxPercentage > 100 {
			return ErrValidation("taxPercentage must be between 0 and 100")
		}
		p.TaxPercentage = *in.TaxPercentage
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Ingredients != nil {
		p.Ingredients = sanitizeList(in.Ingredients)
	}
	if in.IsCombo != nil {
		p.IsCombo = *in.IsCombo
	}
	return nil
}

func (u *ProductUsecase) ensureCategory(ctx context.Context, categoryID string) error {
	ok, err := u.categories.Exists(ctx, categoryID)
	if err != nil {
		return u.internal("check category", err)
	}
	if !ok {
		return ErrNotFound("Category not found")
	}
	return nil
}

// selfIDは更新時の自分自身
func (u *ProductUsecase) ensureUniqueName(ctx context.Context, name, selfID string) error {
	existing, err := u.products.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return u.internal("find product by name", err)
	}
	if existing.ID != selfID {
		return ErrConflict("Product name already exists")
	}
	return nil
}

func (u *ProductUsecase) find(ctx context.Context, productID string) (model.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.Product{}, ErrValidation("invalid id")
	}
	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, ErrNotFound("Product not found")
	}
	if err != nil {
		return model.Product{}, u.internal("find product", err)
	}
	return p, nil
}

func (u *ProductUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}
