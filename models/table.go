package models

import "time"

// Table statuses. A table walks through the full guest lifecycle and
// returns to its original status after cleaning.
const (
	TableStatusAvailable     = "available"
	TableStatusWalkInBlocked = "walk-in-blocked"
	TableStatusReserved      = "reserved"
	TableStatusOccupied      = "occupied"
	TableStatusOrderAccepted = "order_accepted"
	TableStatusEating        = "eating"
	TableStatusServed        = "served"
	TableStatusCheckedOut    = "checked_out"
	TableStatusCleaning      = "cleaning"
)

// TableStatuses is the closed set of statuses a table may hold.
var TableStatuses = []string{
	TableStatusAvailable,
	TableStatusWalkInBlocked,
	TableStatusReserved,
	TableStatusOccupied,
	TableStatusOrderAccepted,
	TableStatusEating,
	TableStatusServed,
	TableStatusCheckedOut,
	TableStatusCleaning,
}

type Table struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TableNumber string `gorm:"type:varchar(50);not null" json:"tableNumber"`
	Capacity    int    `gorm:"not null;default:4" json:"capacity"`
	Status      string `gorm:"type:varchar(50);not null;default:'available'" json:"status"`

	// Guest / reservation data - present only while a party holds the table.
	GuestCount        *int    `json:"guestCount,omitempty"`
	CustomerName      *string `gorm:"type:varchar(255)" json:"customerName,omitempty"`
	ReservationType   *string `gorm:"type:varchar(20)" json:"reservationType,omitempty"`
	ReservationStatus *string `gorm:"type:varchar(30)" json:"reservationStatus,omitempty"`

	// At most one active order may be attached at a time. Orders are
	// referenced by id, never embedded: an order outlives the table's
	// transient occupancy state.
	CurrentOrderID *uint `json:"currentOrderId,omitempty"`

	// Waiter assignment, only while occupied/eating.
	WaiterID   *uint   `json:"waiterId,omitempty"`
	WaiterName *string `gorm:"type:varchar(255)" json:"waiterName,omitempty"`

	// Billing references (the core only records that a payment happened).
	BillGenerated bool     `gorm:"not null;default:false" json:"billGenerated"`
	BillID        *string  `gorm:"type:varchar(64)" json:"billId,omitempty"`
	BillAmount    *float64 `gorm:"type:decimal(10,2)" json:"billAmount,omitempty"`
	PaymentID     *string  `gorm:"type:varchar(64)" json:"paymentId,omitempty"`
	PaymentMethod *string  `gorm:"type:varchar(30)" json:"paymentMethod,omitempty"`

	// The status to restore once cleaning finishes.
	OriginalStatus *string `gorm:"type:varchar(50)" json:"originalStatus,omitempty"`

	// Per-transition time markers, UTC.
	BlockingStartTime    *time.Time `json:"blockingStartTime,omitempty"`
	BlockingTimeout      *time.Time `json:"blockingTimeout,omitempty"`
	ArrivalTime          *time.Time `json:"arrivalTime,omitempty"`
	OccupiedAt           *time.Time `json:"occupiedAt,omitempty"`
	OrderCreatedAt       *time.Time `json:"orderCreatedAt,omitempty"`
	OrderAcceptedAt      *time.Time `json:"orderAcceptedAt,omitempty"`
	PreparationStartedAt *time.Time `json:"preparationStartedAt,omitempty"`
	EstimatedReadyTime   *time.Time `json:"estimatedReadyTime,omitempty"`
	OrderReadyAt         *time.Time `json:"orderReadyAt,omitempty"`
	PaymentCompletedAt   *time.Time `json:"paymentCompletedAt,omitempty"`
	CleaningStartedAt    *time.Time `json:"cleaningStartedAt,omitempty"`
	CleaningEndTime      *time.Time `json:"cleaningEndTime,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// ClearGuestData resets every transient guest/order/billing field back to
// defaults. Used when a cleaning cycle ends or a walk-in expires.
func (t *Table) ClearGuestData() {
	t.GuestCount = nil
	t.CustomerName = nil
	t.ReservationType = nil
	t.CurrentOrderID = nil
	t.WaiterID = nil
	t.WaiterName = nil
	t.BillGenerated = false
	t.BillID = nil
	t.BillAmount = nil
	t.PaymentID = nil
	t.PaymentMethod = nil
	t.OriginalStatus = nil
	t.BlockingStartTime = nil
	t.BlockingTimeout = nil
	t.ArrivalTime = nil
	t.OccupiedAt = nil
	t.OrderCreatedAt = nil
	t.OrderAcceptedAt = nil
	t.PreparationStartedAt = nil
	t.EstimatedReadyTime = nil
	t.OrderReadyAt = nil
	t.PaymentCompletedAt = nil
	t.CleaningStartedAt = nil
	t.CleaningEndTime = nil
}
