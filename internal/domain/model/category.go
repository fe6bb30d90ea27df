package model

import "time"

type Category struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"name" json:"name"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Image       string    `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool      `gorm:"not null;default:true" bson:"is_active" json:"isActive"`
	CreatedBy   string    `gorm:"type:varchar(36)" bson:"created_by" json:"createdBy"`
	UpdatedBy   string    `gorm:"type:varchar(36)" bson:"updated_by" json:"updatedBy"`
	CreatedAt   time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}
