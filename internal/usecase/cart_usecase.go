package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/delivery"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// 明細はカートに埋め込み、価格は表示時に商品から引く。
type CartUsecase struct {
	carts     repo.CartRepository
	products  repo.ProductRepository
	addresses repo.AddressRepository

	estimator delivery.Estimator
	perKm     int64

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

func NewCartUsecase(
	carts repo.CartRepository,
	products repo.ProductRepository,
	addresses repo.AddressRepository,
	estimator delivery.Estimator,
	chargePerKm int64,
	logger *zap.Logger,
) *CartUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartUsecase{
		carts:     carts,
		products:  products,
		addresses: addresses,
		estimator: estimator,
		perKm:     chargePerKm,
		logger:    logger,
		now:       systemClock,
		newID:     newUUID,
	}
}

type CartItemView struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	SalePrice int64  `json:"salePrice"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartView struct {
	ID             string         `json:"id,omitempty"`
	Items          []CartItemView `json:"items"`
	ItemsTotal     int64          `json:"itemsTotal"`
	DeliveryCharge int64          `json:"deliveryCharge"`
	Distance       float64        `json:"distance"`
	AddressID      string         `json:"addressId,omitempty"`
	Total          int64          `json:"total"`
}

type AddCartItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// カート取得（無ければ空）
func (u *CartUsecase) GetCart(ctx context.Context, id Identity) (CartView, error) {
	if err := requireUser(id); err != nil {
		return CartView{}, err
	}
	cart, err := u.load(ctx, id.UserID)
	if err != nil {
		return CartView{}, err
	}
	return u.view(ctx, cart)
}

// カートに追加（同一商品は数量加算）
func (u *CartUsecase) AddItem(ctx context.Context, id Identity, in AddCartItemInput) (CartView, error) {
	if err := requireUser(id); err != nil {
		return CartView{}, err
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return CartView{}, ErrValidation("productId is required")
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return CartView{}, err
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		return CartView{}, ErrNotFound("Product not found")
	}
	if err != nil {
		return CartView{}, u.internal("find product", err)
	}

	cart, err := u.load(ctx, id.UserID)
	if err != nil {
		return CartView{}, err
	}
	if !cart.AddItem(p.ID, in.Quantity) {
		return CartView{}, ErrValidation(fmt.Sprintf("quantity must be at most %d", model.MaxItemQuantity))
	}

	return u.save(ctx, cart)
}

// 数量変更（1以上）
func (u *CartUsecase) UpdateItem(ctx context.Context, id Identity, productID string, quantity int64) (CartView, error) {
	if err := requireUser(id); err != nil {
		return CartView{}, err
	}
	if err := validateQuantity(quantity); err != nil {
		return CartView{}, err
	}

	cart, err := u.load(ctx, id.UserID)
	if err != nil {
		return CartView{}, err
	}
	if !cart.SetQuantity(strings.TrimSpace(productID), quantity) {
		return CartView{}, ErrNotFound("Item not found in cart")
	}

	return u.save(ctx, cart)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, id Identity, productID string) (CartView, error) {
	if err := requireUser(id); err != nil {
		return CartView{}, err
	}

	cart, err := u.load(ctx, id.UserID)
	if err != nil {
		return CartView{}, err
	}
	if !cart.RemoveItem(strings.TrimSpace(productID)) {
		return CartView{}, ErrNotFound("Item not found in cart")
	}

	return u.save(ctx, cart)
}

// 配送先を決めて距離と配送料を計算
func (u *CartUsecase) SetDeliveryAddress(ctx context.Context, id Identity, addressID string) (CartView, error) {
	if err := requireUser(id); err != nil {
		return CartView{}, err
	}
	addressID = strings.TrimSpace(addressID)
	if addressID == "" {
		return CartView{}, ErrValidation("addressId is required")
	}

	addr, err := u.addresses.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, ErrNotFound("Address not found")
	}
	if err != nil {
		return CartView{}, u.internal("find address", err)
	}
	if addr.UserID != id.UserID {
		return CartView{}, ErrForbidden("address does not belong to user")
	}

	cart, err := u.load(ctx, id.UserID)
	if err != nil {
		return CartView{}, err
	}

	meters := delivery.Distance(u.estimator.Origin, delivery.Point{Latitude: addr.Latitude, Longitude: addr.Longitude})
	cart.AddressID = addr.ID
	cart.Distance = meters
	cart.DeliveryCharge = delivery.Charge(meters, u.perKm)

	return u.save(ctx, cart)
}

func (u *CartUsecase) Clear(ctx context.Context, id Identity) error {
	if err := requireUser(id); err != nil {
		return err
	}
	if _, err := u.carts.DeleteByUserID(ctx, id.UserID); err != nil {
		return u.internal("delete cart", err)
	}
	return nil
}

// 無ければ未保存の空カート
func (u *CartUsecase) load(ctx context.Context, userID string) (model.Cart, error) {
	cart, err := u.carts.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		now := u.now()
		return model.Cart{
			ID:        u.newID(),
			UserID:    userID,
			Items:     []model.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return model.Cart{}, u.internal("find cart", err)
	}
	return cart, nil
}

func (u *CartUsecase) save(ctx context.Context, cart model.Cart) (CartView, error) {
	cart.UpdatedAt = u.now()
	if err := u.carts.Save(ctx, cart); err != nil {
		return CartView{}, u.internal("save cart", err)
	}
	return u.view(ctx, cart)
}

// 商品名と現在価格をのせる。消えた商品は表示しない
func (u *CartUsecase) view(ctx context.Context, cart model.Cart) (CartView, error) {
	v := CartView{
		ID:             cart.ID,
		Items:          []CartItemView{},
		DeliveryCharge: cart.DeliveryCharge,
		Distance:       cart.Distance,
		AddressID:      cart.AddressID,
	}
	if len(cart.Items) == 0 {
		v.Total = v.DeliveryCharge
		return v, nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return CartView{}, u.internal("find products", err)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range cart.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		sub, ok := model.LineAmount(p.SalePrice, it.Quantity)
		if !ok {
			return CartView{}, ErrValidation("cart total is too large")
		}
		if v.ItemsTotal, ok = model.AddAmount(v.ItemsTotal, sub); !ok {
			return CartView{}, ErrValidation("cart total is too large")
		}
		v.Items = append(v.Items, CartItemView{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			SalePrice: p.SalePrice,
			Quantity:  it.Quantity,
			Subtotal:  sub,
		})
	}
	total, ok := model.AddAmount(v.ItemsTotal, v.DeliveryCharge)
	if !ok {
		return CartView{}, ErrValidation("cart total is too large")
	}
	v.Total = total
	return v, nil
}

// 1以上MaxItemQuantity以下
func validateQuantity(qty int64) error {
	if qty < 1 {
		return ErrValidation("quantity must be at least 1")
	}
	if qty > model.MaxItemQuantity {
		return ErrValidation(fmt.Sprintf("quantity must be at most %d", model.MaxItemQuantity))
	}
	return nil
}

func (u *CartUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}
