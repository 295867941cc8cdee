package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditAdminEscalationGranted AuditAction = "admin_escalation_granted"
	AuditAdminEscalationDenied  AuditAction = "admin_escalation_denied"
)

// AuditLog records security-sensitive actions, currently the admin-secret
// path at registration.
type AuditLog struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	Actor   string         `json:"actor" gorm:"not null;size:255;index"` // email at registration time
	Action  AuditAction    `json:"action" gorm:"not null;size:64;index"`
	Payload datatypes.JSON `json:"payload"`

	CreatedAt time.Time `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
