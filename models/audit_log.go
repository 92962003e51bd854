package models

import "time"

// AuditLog is an append-only record of every state-changing action.
// Downstream consumers (analytics, reporting) read these rows; the field
// names must stay stable.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Resource   string    `gorm:"type:varchar(30)" json:"resource"`
	ResourceID string    `gorm:"type:varchar(64);index" json:"resourceId"`
	Details    string    `gorm:"type:text" json:"details"`
	Status     string    `gorm:"type:varchar(15);not null;default:'success'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
}
