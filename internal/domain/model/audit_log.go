package model

import "time"

// 注文ステータス更新、注文削除、強制ログアウトなど。
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//注文を削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
	//ユーザーを強制ログアウトさせた操作。
	AuditActionForceLogout AuditAction = "FORCE_LOGOUT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
	AuditResourceUser  AuditResourceType = "user"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`

	//操作したユーザーのID。
	ActorUserID string `gorm:"type:varchar(36);not null;index" bson:"actor_user_id" json:"actorUserId"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" bson:"action" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" bson:"resource_type" json:"resourceType"`
	ResourceID   string            `gorm:"type:varchar(36);not null;index" bson:"resource_id" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" bson:"before_json" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" bson:"after_json" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" bson:"created_at" json:"createdAt"`
}
