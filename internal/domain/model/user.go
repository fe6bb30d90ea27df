package model

import "time"

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// ログインIDは電話番号（一意）
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	PhoneNumber  string `gorm:"type:varchar(20);uniqueIndex;not null" bson:"phone_number" json:"phoneNumber"`
	PasswordHash string `gorm:"column:password_hash;not null" bson:"password_hash" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'Customer'" bson:"role" json:"role"`

	//任意のプロフィール
	Email string `gorm:"type:varchar(255)" bson:"email,omitempty" json:"email,omitempty"`
	Name  string `gorm:"type:varchar(255)" bson:"name,omitempty" json:"name,omitempty"`
	Image string `gorm:"type:text" bson:"image,omitempty" json:"image,omitempty"`

	//パスワード変更・強制ログアウトで+1
	TokenVersion int  `gorm:"not null;default:0" bson:"token_version" json:"tokenVersion"`
	IsActive     bool `gorm:"not null;default:true" bson:"is_active" json:"isActive"`

	CreatedAt time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
