package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/delivery"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

type OrderUsecase struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	addresses repo.AddressRepository
	carts     repo.CartRepository
	users     repo.UserRepository
	audits    repo.AuditLogRepository

	estimator  delivery.Estimator
	numbers    OrderNumberGenerator
	permissive bool

	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

type OrderOption func(*OrderUsecase)

func WithOrderNumberGenerator(g OrderNumberGenerator) OrderOption {
	return func(u *OrderUsecase) { u.numbers = g }
}

// trueならステータス遷移を検証しない
func WithPermissiveStatus(permissive bool) OrderOption {
	return func(u *OrderUsecase) { u.permissive = permissive }
}

func WithOrderClock(now Clock) OrderOption {
	return func(u *OrderUsecase) { u.now = now }
}

func WithOrderIDGenerator(g IDGenerator) OrderOption {
	return func(u *OrderUsecase) { u.newID = g }
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	products repo.ProductRepository,
	addresses repo.AddressRepository,
	carts repo.CartRepository,
	users repo.UserRepository,
	audits repo.AuditLogRepository,
	estimator delivery.Estimator,
	logger *zap.Logger,
	opts ...OrderOption,
) *OrderUsecase {
	u := &OrderUsecase{
		orders:    orders,
		products:  products,
		addresses: addresses,
		carts:     carts,
		users:     users,
		audits:    audits,
		estimator: estimator,
		numbers:   ULIDOrderNumbers{},
		logger:    logger,
		now:       systemClock,
		newID:     newUUID,
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type PlaceOrderItemInput struct {
	ProductID string
	Quantity  int64
}

type PlaceOrderInput struct {
	Items         []PlaceOrderItemInput
	AddressID     string
	PaymentMethod string
	TransactionID string
}

type ListOrdersInput struct {
	Status string
	//管理者のみ有効
	UserID string
	Page   int
	Limit  int
}

type UpdateOrderInput struct {
	Status *string
}

type OrderPage struct {
	Orders []OrderView `json:"orders"`
	Total  int64       `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

// 注文作成
// 商品・住所の参照、合計、配送見積もり、採番、保存、カート削除を順に行う（トランザクションなし）
func (u *OrderUsecase) PlaceOrder(ctx context.Context, id Identity, in PlaceOrderInput) (model.Order, error) {
	if err := requireUser(id); err != nil {
		return model.Order{}, err
	}

	method, err := validatePlaceOrder(&in)
	if err != nil {
		return model.Order{}, err
	}

	//商品を引いてカタログの現在価格で合計（クライアントの価格は使わない）
	items := make([]model.OrderItem, 0, len(in.Items))
	var total int64
	for _, it := range in.Items {
		p, err := u.products.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
			return model.Order{}, ErrNotFound(fmt.Sprintf("Product with ID %s not found", it.ProductID))
		}
		if err != nil {
			return model.Order{}, u.internal("find product", err)
		}
		sub, ok := model.LineAmount(p.SalePrice, it.Quantity)
		if !ok {
			return model.Order{}, ErrValidation("order total is too large")
		}
		if total, ok = model.AddAmount(total, sub); !ok {
			return model.Order{}, ErrValidation("order total is too large")
		}
		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Price:     p.SalePrice,
		})
	}

	//住所の存在確認＋所有チェック
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrNotFound(fmt.Sprintf("Address with ID %s not found", in.AddressID))
	}
	if err != nil {
		return model.Order{}, u.internal("find address", err)
	}
	if addr.UserID != id.UserID {
		return model.Order{}, ErrForbidden("address does not belong to user")
	}

	now := u.now()
	est := u.estimator.Estimate(now, delivery.Point{Latitude: addr.Latitude, Longitude: addr.Longitude})

	order := model.Order{
		ID:                 u.newID(),
		OrderNumber:        u.numbers.Next(now),
		UserID:             id.UserID,
		Items:              items,
		TotalAmount:        total,
		Status:             model.OrderStatusOrdered,
		PaymentMethod:      method,
		TransactionID:      in.TransactionID,
		AddressID:          addr.ID,
		ExpectedDeliveryAt: est.ExpectedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := u.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Order{}, ErrConflict("order number already exists, please retry")
		}
		return model.Order{}, u.internal("create order", err)
	}

	//カート削除は失敗しても注文は確定（ログのみ）
	if _, err := u.carts.DeleteByUserID(ctx, id.UserID); err != nil {
		u.logger.Warn("cart cleanup after order failed",
			zap.String("user_id", id.UserID),
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}

	u.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", order.UserID),
		zap.Int64("total_amount", order.TotalAmount),
		zap.Int("lead_days", est.LeadDays),
	)
	return order, nil
}

// 入力チェック。代引きなら決済IDは捨てる
func validatePlaceOrder(in *PlaceOrderInput) (model.PaymentMethod, error) {
	in.AddressID = strings.TrimSpace(in.AddressID)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	in.TransactionID = strings.TrimSpace(in.TransactionID)

	if len(in.Items) == 0 {
		return "", ErrValidation("items are required")
	}
	if in.AddressID == "" {
		return "", ErrValidation("address is required")
	}
	if in.PaymentMethod == "" {
		return "", ErrValidation("paymentMethod is required")
	}
	method := model.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return "", ErrValidation("invalid paymentMethod")
	}

	//呼び出し元のスライスは書き換えない
	items := make([]PlaceOrderItemInput, len(in.Items))
	for i, it := range in.Items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		if it.ProductID == "" {
			return "", ErrValidation("product is required for every item")
		}
		if err := validateQuantity(it.Quantity); err != nil {
			return "", err
		}
		items[i] = it
	}
	in.Items = items

	if method.RequiresTransactionID() {
		if in.TransactionID == "" {
			return "", ErrValidation("transactionId is required for " + string(method))
		}
	} else {
		in.TransactionID = ""
	}
	return method, nil
}

// 注文一覧（Customerは自分の注文だけ）
func (u *OrderUsecase) List(ctx context.Context, id Identity, in ListOrdersInput) (OrderPage, error) {
	if err := requireUser(id); err != nil {
		return OrderPage{}, err
	}

	status := strings.TrimSpace(in.Status)
	if status != "" && !model.OrderStatus(status).Valid() {
		return OrderPage{}, ErrValidation("invalid status")
	}
	if in.Page < 0 {
		return OrderPage{}, ErrValidation("invalid page")
	}
	if in.Limit < 0 {
		return OrderPage{}, ErrValidation("invalid limit")
	}

	f := repo.OrderListFilter{
		Scope:  scopeOf(id),
		Status: status,
		UserID: strings.TrimSpace(in.UserID),
		Page:   in.Page,
		Limit:  in.Limit,
	}.Normalized()

	orders, total, err := u.orders.List(ctx, f)
	if err != nil {
		return OrderPage{}, u.internal("list orders", err)
	}

	views, err := u.project(ctx, orders)
	if err != nil {
		return OrderPage{}, u.internal("project orders", err)
	}
	return OrderPage{Orders: views, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// 注文1件（他人の注文はNotFound）
func (u *OrderUsecase) Get(ctx context.Context, id Identity, orderID string) (OrderView, error) {
	if err := requireUser(id); err != nil {
		return OrderView{}, err
	}
	o, err := u.find(ctx, id, orderID)
	if err != nil {
		return OrderView{}, err
	}
	views, err := u.project(ctx, []model.Order{o})
	if err != nil {
		return OrderView{}, u.internal("project order", err)
	}
	return views[0], nil
}

// ステータス更新。statusが無ければ更新時刻だけ進める
func (u *OrderUsecase) UpdateStatus(ctx context.Context, id Identity, orderID string, in UpdateOrderInput) (model.Order, error) {
	if err := requireUser(id); err != nil {
		return model.Order{}, err
	}

	o, err := u.find(ctx, id, orderID)
	if err != nil {
		return model.Order{}, err
	}
	before := o.Status

	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		next := model.OrderStatus(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return model.Order{}, ErrValidation("invalid status")
		}
		//Customerは自分の注文のキャンセルだけ
		if !id.IsAdmin() && next != before && next != model.OrderStatusCancelled {
			return model.Order{}, ErrForbidden("only admins can set status " + string(next))
		}
		if !u.permissive && !before.CanTransitionTo(next) {
			return model.Order{}, ErrValidation(fmt.Sprintf("cannot change order status from %s to %s", before, next))
		}
		o.Status = next
	}

	o.UpdatedAt = u.now()
	if err := u.orders.Update(ctx, scopeOf(id), o); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, ErrNotFound("Order not found")
		}
		return model.Order{}, u.internal("update order", err)
	}

	if o.Status != before {
		u.audit(ctx, id, model.AuditActionUpdateOrderStatus, o.ID,
			map[string]string{"status": string(before)},
			map[string]string{"status": string(o.Status)},
		)
	}
	return o, nil
}

// 物理削除
func (u *OrderUsecase) Delete(ctx context.Context, id Identity, orderID string) error {
	if err := requireUser(id); err != nil {
		return err
	}

	o, err := u.find(ctx, id, orderID)
	if err != nil {
		return err
	}

	if err := u.orders.Delete(ctx, scopeOf(id), o.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound("Order not found")
		}
		return u.internal("delete order", err)
	}

	u.audit(ctx, id, model.AuditActionDeleteOrder, o.ID, o, nil)
	return nil
}

func (u *OrderUsecase) find(ctx context.Context, id Identity, orderID string) (model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return model.Order{}, ErrValidation("invalid id")
	}
	o, err := u.orders.FindByID(ctx, scopeOf(id), orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, ErrNotFound("Order not found")
	}
	if err != nil {
		return model.Order{}, u.internal("find order", err)
	}
	return o, nil
}

// 監査ログ。書けなくても操作は成功扱い
func (u *OrderUsecase) audit(ctx context.Context, id Identity, action model.AuditAction, orderID string, before, after any) {
	entry := model.AuditLog{
		ID:           u.newID(),
		ActorUserID:  id.UserID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    u.now(),
	}
	if err := u.audits.Create(ctx, entry); err != nil {
		u.logger.Warn("audit log write failed",
			zap.String("action", string(action)),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}

func (u *OrderUsecase) internal(op string, err error) error {
	u.logger.Error(op, zap.Error(err))
	return ErrInternal(err)
}

func toJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
