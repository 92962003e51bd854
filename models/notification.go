package models

import (
	"time"
)

// Notification types emitted by the lifecycle core.
const (
	NotificationOrderReady = "order_ready"
	NotificationLowStock   = "low_stock"
)

type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"type:varchar(30);not null" json:"type"`
	OrderID     *uint     `gorm:"index" json:"orderId,omitempty"`
	OrderNumber *string   `gorm:"type:varchar(20)" json:"orderNumber,omitempty"`
	TableID     *uint     `gorm:"index" json:"tableId,omitempty"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}
