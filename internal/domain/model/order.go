package model

import "time"

type OrderStatus string

const (
	OrderStatusOrdered    OrderStatus = "Ordered"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// 前進方向の順序。Cancelledは含まない
var orderStatusRank = map[OrderStatus]int{
	OrderStatusOrdered:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// 遷移可否
// - 同じステータスはOK（更新時刻だけ進む）
// - 終端（Delivered/Cancelled）からは動かせない
// - Cancelledは非終端ならどこからでも
// - それ以外は前進のみ（飛ばしてもよい）
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderStatusRank[next] > orderStatusRank[s]
}

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentMethodCreditCard     PaymentMethod = "Credit Card"
	PaymentMethodPayPal         PaymentMethod = "PayPal"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCashOnDelivery, PaymentMethodCreditCard, PaymentMethodPayPal:
		return true
	}
	return false
}

// 代引き以外は決済IDが必須
func (p PaymentMethod) RequiresTransactionID() bool {
	return p != PaymentMethodCashOnDelivery
}

// 注文明細（注文時点の価格スナップショット）
type OrderItem struct {
	ProductID string `bson:"product_id" json:"productId"`
	Quantity  int64  `bson:"quantity" json:"quantity"`
	Price     int64  `bson:"price" json:"price"`
}

func (i OrderItem) Subtotal() int64 {
	return i.Price * i.Quantity
}

type Order struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	OrderNumber string      `gorm:"type:varchar(64);uniqueIndex;not null" bson:"order_number" json:"orderNumber"`
	UserID      string      `gorm:"type:varchar(36);not null;index" bson:"user_id" json:"userId"`
	Items       []OrderItem `gorm:"serializer:json" bson:"items" json:"items"`
	TotalAmount int64       `gorm:"not null" bson:"total_amount" json:"totalAmount"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" bson:"status" json:"status"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(30);not null" bson:"payment_method" json:"paymentMethod"`
	TransactionID string        `gorm:"type:varchar(255)" bson:"transaction_id,omitempty" json:"transactionId,omitempty"`

	AddressID          string    `gorm:"type:varchar(36);not null" bson:"address_id" json:"address"`
	ExpectedDeliveryAt time.Time `gorm:"not null" bson:"expected_delivery_at" json:"expectedDeliveryDate"`
	CreatedAt          time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}

// 明細から合計を計算する
func (o *Order) ComputeTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}
