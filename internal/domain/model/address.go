package model

import "time"

// 配送先住所
type Address struct {
	ID     string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	UserID string `gorm:"type:varchar(36);not null;index" bson:"user_id" json:"userId"`

	//宛名
	Name string `gorm:"type:varchar(255);not null" bson:"name" json:"name"`

	//電話番号
	Phone string `gorm:"type:varchar(30)" bson:"phone" json:"phone"`

	//番地など
	Line1 string `gorm:"type:varchar(255);not null" bson:"line1" json:"line1"`

	//建物名など
	Line2 string `gorm:"type:varchar(255)" bson:"line2" json:"line2"`

	City       string `gorm:"type:varchar(255);not null" bson:"city" json:"city"`
	State      string `gorm:"type:varchar(100)" bson:"state" json:"state"`
	PostalCode string `gorm:"type:varchar(20);not null" bson:"postal_code" json:"postalCode"`
	Landmark   string `gorm:"type:varchar(255)" bson:"landmark" json:"landmark"`

	//配送日数の見積もりに使う
	Latitude  float64 `gorm:"not null" bson:"latitude" json:"latitude"`
	Longitude float64 `gorm:"not null" bson:"longitude" json:"longitude"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" bson:"is_default" json:"isDefault"`

	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}
