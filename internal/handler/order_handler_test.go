package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/delivery"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	"github.com/maheshmohan7319/GOODINSIDE/internal/middleware"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

// 使うメソッドだけ実装する。それ以外を呼ぶとpanic
type fakeProducts struct {
	repo.ProductRepository
	items map[string]model.Product
}

func (f *fakeProducts) FindByID(_ context.Context, id string) (model.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

type fakeAddresses struct {
	repo.AddressRepository
	items map[string]model.Address
}

func (f *fakeAddresses) FindByID(_ context.Context, id string) (model.Address, error) {
	a, ok := f.items[id]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

type fakeOrders struct {
	repo.OrderRepository
	created []model.Order
	stored  map[string]model.Order
	deleted []string
}

func (f *fakeOrders) Create(_ context.Context, o model.Order) error {
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, scope repo.OrderScope, id string) (model.Order, error) {
	o, ok := f.stored[id]
	if !ok || (!scope.All && o.UserID != scope.UserID) {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) Update(ctx context.Context, scope repo.OrderScope, o model.Order) error {
	if _, err := f.FindByID(ctx, scope, o.ID); err != nil {
		return err
	}
	f.stored[o.ID] = o
	return nil
}

func (f *fakeOrders) Delete(ctx context.Context, scope repo.OrderScope, id string) error {
	if _, err := f.FindByID(ctx, scope, id); err != nil {
		return err
	}
	delete(f.stored, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAudits struct {
	repo.AuditLogRepository
	logs []model.AuditLog
}

func (f *fakeAudits) Create(_ context.Context, l model.AuditLog) error {
	f.logs = append(f.logs, l)
	return nil
}

type fakeCarts struct {
	repo.CartRepository
	cleared []string
}

func (f *fakeCarts) DeleteByUserID(_ context.Context, userID string) (int64, error) {
	f.cleared = append(f.cleared, userID)
	return 1, nil
}

// JWTの代わりにcontextへ呼び出し元を入れる
func asUser(userID string, role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserIDKey, userID)
			c.Set(middleware.CtxUserRoleKey, string(role))
			return next(c)
		}
	}
}

type orderFixture struct {
	e      *echo.Echo
	orders *fakeOrders
	carts  *fakeCarts
	audits *fakeAudits
}

func newOrderFixture() *orderFixture {
	return newOrderFixtureAs("u1", model.RoleCustomer)
}

func newOrderFixtureAs(userID string, role model.Role) *orderFixture {
	products := &fakeProducts{items: map[string]model.Product{
		"p1": {ID: "p1", Name: "Granola", SalePrice: 100, IsActive: true},
	}}
	addresses := &fakeAddresses{items: map[string]model.Address{
		"a1": {ID: "a1", UserID: "u1", Latitude: 0.0224, Longitude: 0},
	}}
	f := &orderFixture{
		e:      echo.New(),
		orders: &fakeOrders{stored: map[string]model.Order{}},
		carts:  &fakeCarts{},
		audits: &fakeAudits{},
	}

	uc := usecase.NewOrderUsecase(f.orders, products, addresses, f.carts, nil, f.audits, delivery.NewEstimator(0, 0), nil)
	NewOrderHandler(uc).RegisterRoutes(f.e, Guards{Auth: []echo.MiddlewareFunc{asUser(userID, role)}})
	return f
}

func (f *orderFixture) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestOrderHandler_Create(t *testing.T) {
	f := newOrderFixture()

	rec := f.do(http.MethodPost, "/orders",
		`{"items":[{"product":"p1","quantity":2,"price":1}],"address":"a1","paymentMethod":"Cash on Delivery"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order created successfully", body["message"])

	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(200), order["totalAmount"])
	assert.Equal(t, "Ordered", order["status"])

	require.Len(t, f.orders.created, 1)
	assert.Equal(t, "u1", f.orders.created[0].UserID)
	assert.Equal(t, []string{"u1"}, f.carts.cleared)
}

func TestOrderHandler_Create_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"malformed json", `{"items":`, http.StatusBadRequest, "ValidationFailed"},
		{"no items", `{"items":[],"address":"a1","paymentMethod":"PayPal","transactionId":"t"}`, http.StatusBadRequest, "ValidationFailed"},
		{"missing transaction id", `{"items":[{"product":"p1","quantity":1}],"address":"a1","paymentMethod":"PayPal"}`, http.StatusBadRequest, "ValidationFailed"},
		{"unknown product", `{"items":[{"product":"p9","quantity":1}],"address":"a1","paymentMethod":"Cash on Delivery"}`, http.StatusNotFound, "NotFound"},
		{"unknown address", `{"items":[{"product":"p1","quantity":1}],"address":"a9","paymentMethod":"Cash on Delivery"}`, http.StatusNotFound, "NotFound"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture()
			rec := f.do(http.MethodPost, "/orders", tc.body)

			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			body := decodeMap(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.kind, body["error"])
			assert.Empty(t, f.orders.created)
		})
	}
}

func TestOrderHandler_List_InvalidPage(t *testing.T) {
	f := newOrderFixture()

	rec := f.do(http.MethodGet, "/orders?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", decodeMap(t, rec)["error"])
}

func placedOrder(id, userID string) model.Order {
	return model.Order{
		ID:            id,
		OrderNumber:   "ORD-" + id,
		UserID:        userID,
		Items:         []model.OrderItem{{ProductID: "p1", Quantity: 1, Price: 100}},
		TotalAmount:   100,
		AddressID:     "a1",
		PaymentMethod: model.PaymentMethodCashOnDelivery,
		Status:        model.OrderStatusOrdered,
	}
}

func TestOrderHandler_Detail_NotFound(t *testing.T) {
	f := newOrderFixture()
	f.orders.stored["o2"] = placedOrder("o2", "u2")

	for _, target := range []string{"/orders/missing", "/orders/o2"} {
		rec := f.do(http.MethodGet, target, "")

		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		body := decodeMap(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "NotFound", body["error"])
	}
}

func TestOrderHandler_Update_AdminDelivered(t *testing.T) {
	f := newOrderFixtureAs("admin-1", model.RoleAdmin)
	f.orders.stored["o1"] = placedOrder("o1", "u1")

	rec := f.do(http.MethodPut, "/orders/o1", `{"status":"Delivered"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeMap(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order updated successfully", body["message"])
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Delivered", order["status"])

	assert.Equal(t, model.OrderStatusDelivered, f.orders.stored["o1"].Status)
	require.Len(t, f.audits.logs, 1)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, f.audits.logs[0].Action)
	assert.Equal(t, "admin-1", f.audits.logs[0].ActorUserID)
}

func TestOrderHandler_Update_CustomerCannotDeliver(t *testing.T) {
	f := newOrderFixture()
	f.orders.stored["o1"] = placedOrder("o1", "u1")

	rec := f.do(http.MethodPut, "/orders/o1", `{"status":"Delivered"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	assert.Equal(t, model.OrderStatusOrdered, f.orders.stored["o1"].Status)
	assert.Empty(t, f.audits.logs)
}

func TestOrderHandler_Delete_NotFound(t *testing.T) {
	f := newOrderFixture()
	f.orders.stored["o2"] = placedOrder("o2", "u2")

	for _, target := range []string{"/orders/missing", "/orders/o2"} {
		rec := f.do(http.MethodDelete, target, "")

		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "NotFound", decodeMap(t, rec)["error"])
	}
	assert.Empty(t, f.orders.deleted)
	assert.Contains(t, f.orders.stored, "o2")
}
