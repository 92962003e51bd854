package models

import (
	"time"
)

// CleaningLog records one cleaning cycle of a table, opened when payment
// completes and closed when the table returns to service.
type CleaningLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TableID   uint       `gorm:"not null;index" json:"tableId"`
	Table     *Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	CleanerID *uint      `json:"cleanerId,omitempty"`
	Status    string     `gorm:"type:varchar(15);not null;default:'in_progress'" json:"status"`
	StartedAt time.Time  `gorm:"not null" json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
}
