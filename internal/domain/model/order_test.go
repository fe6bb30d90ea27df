package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusOrdered, OrderStatusProcessing, true},
		{OrderStatusOrdered, OrderStatusDelivered, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusOrdered, OrderStatusOrdered, true},
		{OrderStatusDelivered, OrderStatusOrdered, false},
		{OrderStatusShipped, OrderStatusProcessing, false},
		{OrderStatusCancelled, OrderStatusOrdered, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusOrdered, OrderStatus("Lost"), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodCashOnDelivery.Valid())
	assert.False(t, PaymentMethod("Bitcoin").Valid())

	assert.False(t, PaymentMethodCashOnDelivery.RequiresTransactionID())
	assert.True(t, PaymentMethodCreditCard.RequiresTransactionID())
	assert.True(t, PaymentMethodPayPal.RequiresTransactionID())
}

func TestOrder_ComputeTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{ProductID: "p1", Quantity: 2, Price: 100},
		{ProductID: "p2", Quantity: 1, Price: 250},
	}}
	assert.Equal(t, int64(450), o.ComputeTotal())
}

func TestProduct_DiscountPercentage(t *testing.T) {
	assert.Equal(t, 25.0, Product{SalePrice: 200, OfferPrice: 150}.DiscountPercentage())
	assert.Equal(t, 33.33, Product{SalePrice: 300, OfferPrice: 200}.DiscountPercentage())
	assert.Equal(t, 0.0, Product{}.DiscountPercentage())
}

func TestCart_Items(t *testing.T) {
	c := Cart{}
	assert.True(t, c.AddItem("p1", 1))
	assert.True(t, c.AddItem("p1", 2))
	assert.True(t, c.AddItem("p2", 1))

	if assert.Len(t, c.Items, 2) {
		assert.Equal(t, int64(3), c.Items[0].Quantity)
	}

	assert.True(t, c.SetQuantity("p2", 5))
	assert.False(t, c.SetQuantity("nope", 1))
	assert.Equal(t, int64(5), c.Items[1].Quantity)

	assert.True(t, c.RemoveItem("p1"))
	assert.False(t, c.RemoveItem("p1"))
	assert.Len(t, c.Items, 1)
}

func TestCart_AddItem_QuantityLimit(t *testing.T) {
	c := Cart{}
	assert.False(t, c.AddItem("p1", MaxItemQuantity+1))
	assert.Empty(t, c.Items)

	assert.True(t, c.AddItem("p1", MaxItemQuantity-1))
	assert.True(t, c.AddItem("p1", 1))
	// 上限を超える加算は元のまま
	assert.False(t, c.AddItem("p1", 1))
	assert.Equal(t, MaxItemQuantity, c.Items[0].Quantity)
}
