package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
)

type OrderUserView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type OrderProductView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SalePrice int64  `json:"salePrice"`
}

type OrderItemView struct {
	//削除済みの商品ならnull
	Product   *OrderProductView `json:"product"`
	ProductID string            `json:"productId"`
	Quantity  int64             `json:"quantity"`
	Price     int64             `json:"price"`
}

// 一覧・詳細で返す形
type OrderView struct {
	ID                   string              `json:"id"`
	OrderNumber          string              `json:"orderNumber"`
	Status               model.OrderStatus   `json:"status"`
	TotalAmount          int64               `json:"totalAmount"`
	PaymentMethod        model.PaymentMethod `json:"paymentMethod"`
	TransactionID        string              `json:"transactionId,omitempty"`
	User                 *OrderUserView      `json:"user"`
	Items                []OrderItemView     `json:"items"`
	Address              *model.Address      `json:"address"`
	ExpectedDeliveryDate time.Time           `json:"expectedDeliveryDate"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// ユーザー・商品・住所をまとめて引いて埋める（3本並列）
func (u *OrderUsecase) project(ctx context.Context, orders []model.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	userIDs := newIDSet()
	productIDs := newIDSet()
	addressIDs := newIDSet()
	for _, o := range orders {
		userIDs.add(o.UserID)
		addressIDs.add(o.AddressID)
		for _, it := range o.Items {
			productIDs.add(it.ProductID)
		}
	}

	var (
		users     []model.User
		products  []model.Product
		addresses []model.Address
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = u.users.FindByIDs(gctx, userIDs.list())
		return err
	})
	g.Go(func() error {
		var err error
		products, err = u.products.FindByIDs(gctx, productIDs.list())
		return err
	})
	g.Go(func() error {
		var err error
		addresses, err = u.addresses.FindByIDs(gctx, addressIDs.list())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userByID := make(map[string]model.User, len(users))
	for _, x := range users {
		userByID[x.ID] = x
	}
	productByID := make(map[string]model.Product, len(products))
	for _, x := range products {
		productByID[x.ID] = x
	}
	addressByID := make(map[string]model.Address, len(addresses))
	for _, x := range addresses {
		addressByID[x.ID] = x
	}

	for _, o := range orders {
		v := OrderView{
			ID:                   o.ID,
			OrderNumber:          o.OrderNumber,
			Status:               o.Status,
			TotalAmount:          o.TotalAmount,
			PaymentMethod:        o.PaymentMethod,
			TransactionID:        o.TransactionID,
			Items:                make([]OrderItemView, 0, len(o.Items)),
			ExpectedDeliveryDate: o.ExpectedDeliveryAt,
			CreatedAt:            o.CreatedAt,
			UpdatedAt:            o.UpdatedAt,
		}
		if usr, ok := userByID[o.UserID]; ok {
			v.User = &OrderUserView{ID: usr.ID, Name: usr.Name, PhoneNumber: usr.PhoneNumber}
		}
		if a, ok := addressByID[o.AddressID]; ok {
			a := a
			v.Address = &a
		}
		for _, it := range o.Items {
			iv := OrderItemView{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
			if p, ok := productByID[it.ProductID]; ok {
				iv.Product = &OrderProductView{ID: p.ID, Name: p.Name, SalePrice: p.SalePrice}
			}
			v.Items = append(v.Items, iv)
		}
		views = append(views, v)
	}
	return views, nil
}

// 重複なし・順序保持
type idSet struct {
	seen map[string]struct{}
	ids  []string
}

func newIDSet() *idSet { return &idSet{seen: map[string]struct{}{}} }

func (s *idSet) add(id string) {
	if id == "" {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *idSet) list() []string { return s.ids }
