package models

import "time"

// Timer kinds.
const (
	TimerKindWalkInExpiry     = "walk_in_expiry"
	TimerKindCleaningComplete = "cleaning_complete"
)

// Timer outcomes once a due row has been picked up by the poll loop.
const (
	TimerOutcomeFired      = "fired"
	TimerOutcomeSuperseded = "superseded"
	TimerOutcomeFailed     = "failed"
)

// TableTimer is a durable delayed transition: reset a table at FireAt,
// but only if it still holds ExpectedStatus at that moment. Rows survive
// a process restart and are re-armed by the scheduler poll loop.
//
// Timers are advisory, never authoritative. They are not cancelled when
// a table moves on; the guard-on-fire check turns a stale timer into a
// verified no-op instead.
type TableTimer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	TableID uint   `gorm:"not null;index" json:"tableId"`
	Kind    string `gorm:"type:varchar(30);not null" json:"kind"`

	// Status the table must still be in for the fire to act.
	ExpectedStatus string `gorm:"type:varchar(50);not null" json:"expectedStatus"`
	// Status to restore on fire (cleaning_complete only).
	RestoreStatus string `gorm:"type:varchar(50)" json:"restoreStatus"`

	FireAt  time.Time  `gorm:"not null;index" json:"fireAt"`
	FiredAt *time.Time `json:"firedAt,omitempty"`
	Outcome string     `gorm:"type:varchar(15)" json:"outcome"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
