package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
)

func newOrderGorm(t *testing.T) (*OrderGormRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewOrderGormRepository(gdb), mock
}

var orderColumns = []string{
	"id", "order_number", "user_id", "items", "total_amount", "status",
	"payment_method", "address_id", "expected_delivery_at", "created_at", "updated_at",
}

func orderRow(rows *sqlmock.Rows, id, userID string, status model.OrderStatus) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "ORD-"+id, userID,
		[]byte(`[{"productId":"p1","quantity":2,"price":100}]`),
		int64(200), string(status), string(model.PaymentMethodCashOnDelivery), "a1",
		now.AddDate(0, 0, 3), now, now,
	)
}

func TestOrderGormRepository_FindByID_Scope(t *testing.T) {
	ctx := context.Background()

	t.Run("customer sees own order", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1 AND user_id = $2`)).
			WithArgs("o1", "u1", 1).
			WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), "o1", "u1", model.OrderStatusOrdered))

		o, err := r.FindByID(ctx, repo.OrderScope{UserID: "u1"}, "o1")
		require.NoError(t, err)
		assert.Equal(t, "o1", o.ID)
		assert.Equal(t, int64(200), o.TotalAmount)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "p1", o.Items[0].ProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other user's order is not found", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
			WithArgs("o1", "u2", 1).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		_, err := r.FindByID(ctx, repo.OrderScope{UserID: "u2"}, "o1")
		assert.ErrorIs(t, err, repo.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin is not restricted", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE id = $1 ORDER BY`)).
			WithArgs("o1", 1).
			WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), "o1", "u1", model.OrderStatusShipped))

		o, err := r.FindByID(ctx, repo.OrderScope{All: true}, "o1")
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, o.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderGormRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("customer scope ignores user filter", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "orders" WHERE user_id = $1 AND status = $2`)).
			WithArgs("u1", "Shipped").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE user_id = $1 AND status = $2 ORDER BY created_at desc LIMIT $3 OFFSET $4`)).
			WithArgs("u1", "Shipped", 10, 10).
			WillReturnRows(orderRow(sqlmock.NewRows(orderColumns), "o11", "u1", model.OrderStatusShipped))

		items, total, err := r.List(ctx, repo.OrderListFilter{
			Scope:  repo.OrderScope{UserID: "u1"},
			Status: "Shipped",
			UserID: "u2",
			Page:   2,
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, items, 1)
		assert.Equal(t, "u1", items[0].UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin filters by user with default limit", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "orders" WHERE user_id = $1`)).
			WithArgs("u2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders" WHERE user_id = $1 ORDER BY created_at desc LIMIT $2`)).
			WithArgs("u2", repo.DefaultOrderLimit).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		items, total, err := r.List(ctx, repo.OrderListFilter{Scope: repo.OrderScope{All: true}, UserID: "u2"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderGormRepository_UpdateAndDelete_Scope(t *testing.T) {
	ctx := context.Background()

	t.Run("update outside scope is not found", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND user_id = $4`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := r.Update(ctx, repo.OrderScope{UserID: "u2"}, model.Order{
			ID:        "o1",
			Status:    model.OrderStatusCancelled,
			UpdatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, repo.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin delete", func(t *testing.T) {
		r, mock := newOrderGorm(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "orders" WHERE id = $1`)).
			WithArgs("o1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, r.Delete(ctx, repo.OrderScope{All: true}, "o1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
