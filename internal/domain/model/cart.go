package model

import "time"

// カートの明細（価格は持たない。表示時に商品から引く）
type CartItem struct {
	ProductID string `bson:"product_id" json:"productId"`
	Quantity  int64  `bson:"quantity" json:"quantity"`
}

// 1ユーザーにつきカートは1つ
type Cart struct {
	ID     string     `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	UserID string     `gorm:"type:varchar(36);uniqueIndex;not null" bson:"user_id" json:"userId"`
	Items  []CartItem `gorm:"serializer:json" bson:"items" json:"items"`

	//配送料と店舗からの距離（m）
	DeliveryCharge int64   `gorm:"not null;default:0" bson:"delivery_charge" json:"deliveryCharge"`
	Distance       float64 `gorm:"not null;default:0" bson:"distance" json:"distance"`
	AddressID      string  `gorm:"type:varchar(36)" bson:"address_id,omitempty" json:"addressId,omitempty"`

	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}

// 同一商品は数量加算。合計がMaxItemQuantityを超えるなら変更せずfalse
func (c *Cart) AddItem(productID string, qty int64) bool {
	if qty < 1 || qty > MaxItemQuantity {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if c.Items[i].Quantity > MaxItemQuantity-qty {
				return false
			}
			c.Items[i].Quantity += qty
			return true
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	return true
}

// 数量を直接設定。見つからなければfalse
func (c *Cart) SetQuantity(productID string, qty int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			return true
		}
	}
	return false
}

func (c *Cart) RemoveItem(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
