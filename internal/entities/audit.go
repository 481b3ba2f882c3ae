package entities

import "time"

type AuditEventType string

const (
	AuditEventBookAdd          AuditEventType = "book_add"
	AuditEventBookUpdate       AuditEventType = "book_update"
	AuditEventBookDelete       AuditEventType = "book_delete"
	AuditEventTransactionAdd   AuditEventType = "transaction_add"
	AuditEventTransactionEdit  AuditEventType = "transaction_update"
	AuditEventTransactionDrop  AuditEventType = "transaction_delete"
	AuditEventUserRegister     AuditEventType = "user_register"
	AuditEventSignInFailed     AuditEventType = "signin_failed"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is a row in the mutation trail. Every admin-gated write records
// one, whether or not the write itself succeeded.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"eventType"`
	Status      AuditStatus    `gorm:"size:16" json:"status"`
	EntityType  string         `gorm:"size:50" json:"entityType,omitempty"`
	EntityID    *uint          `gorm:"index" json:"entityId,omitempty"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ipAddress,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
