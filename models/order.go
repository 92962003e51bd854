package models

import (
	"fmt"
	"time"
)

// Order statuses. Transitions run forward along this chain; "cancelled"
// is reachable from any non-terminal status. "accepted" sits between
// placed and preparing and is only used by the table-facing flow.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusAccepted  = "accepted"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Payment states recorded on the order. The core never talks to a
// gateway; it only records the outcome.
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPaid    = "paid"
	PaymentStatusSettled = "settled"
)

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeDelivery = "delivery"
	OrderTypeTakeaway = "takeaway"
)

type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderNumber string  `gorm:"type:varchar(20);uniqueIndex;not null" json:"orderNumber"`
	Status      string  `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Type        string  `gorm:"type:varchar(20);not null;default:'dine-in'" json:"type"`
	Total       float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`

	// TableID is nil for delivery/takeaway orders. Back-reference by id
	// only; the table is never embedded.
	TableID *uint `gorm:"index" json:"tableId,omitempty"`

	PaymentStatus string `gorm:"type:varchar(20);not null;default:'unpaid'" json:"paymentStatus"`

	ChefID *uint `gorm:"index" json:"chefId,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	SentToKitchenAt      *time.Time `json:"sentToKitchenAt,omitempty"`
	PreparationStartedAt *time.Time `json:"preparationStartedAt,omitempty"`
	EstimatedReadyTime   *time.Time `json:"estimatedReadyTime,omitempty"`
	ReadyAt              *time.Time `json:"readyAt,omitempty"`
	ServedAt             *time.Time `json:"servedAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	CancelledAt          *time.Time `json:"cancelledAt,omitempty"`
	StatusUpdatedAt      *time.Time `json:"statusUpdatedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// FormatOrderNumber builds the human-facing sequential order number.
// Numbering starts at 1001.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("#ORD-%d", 1000+seq)
}
