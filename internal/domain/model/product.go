package model

import (
	"math"
	"time"
)

// 価格はすべて最小通貨単位（int64）
type Product struct {
	ID          string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" bson:"name" json:"name"`
	Description string `gorm:"type:text" bson:"description" json:"description"`

	SalePrice     int64 `gorm:"not null" bson:"sale_price" json:"salePrice"`
	OfferPrice    int64 `gorm:"not null;default:0" bson:"offer_price" json:"offerPrice"`
	PurchasePrice int64 `gorm:"not null;default:0" bson:"purchase_price" json:"purchasePrice"`

	CategoryID     string  `gorm:"type:varchar(36);index" bson:"category_id" json:"category"`
	IsTaxInclusive bool    `gorm:"not null;default:false" bson:"is_tax_inclusive" json:"isTaxInclusive"`
	TaxPercentage  float64 `gorm:"not null;default:0" bson:"tax_percentage" json:"taxPercentage"`
	IsActive       bool    `gorm:"not null;default:true" bson:"is_active" json:"isActive"`

	//画像はオブジェクトストレージのURL
	Image       string   `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`
	Ingredients []string `gorm:"serializer:json" bson:"ingredients" json:"ingredients"`
	IsCombo     bool     `gorm:"not null;default:false" bson:"is_combo" json:"isCombo"`

	CreatedBy string    `gorm:"type:varchar(36)" bson:"created_by" json:"createdBy"`
	UpdatedBy string    `gorm:"type:varchar(36)" bson:"updated_by" json:"updatedBy"`
	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}

// 割引率（%）。小数2桁で丸める
func (p Product) DiscountPercentage() float64 {
	if p.SalePrice == 0 {
		return 0
	}
	pct := float64(p.SalePrice-p.OfferPrice) / float64(p.SalePrice) * 100
	return math.Round(pct*100) / 100
}
