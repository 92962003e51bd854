package models

import "time"

// Derived stock-health statuses, recomputed on every stock mutation.
const (
	StockStatusHealthy  = "Healthy"
	StockStatusLow      = "Low"
	StockStatusCritical = "Critical"
	StockStatusOut      = "Out"
)

type Ingredient struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Unit         string  `gorm:"type:varchar(20);not null" json:"unit"`
	Category     string  `gorm:"type:varchar(100)" json:"category"`
	StockLevel   float64 `gorm:"not null;default:0" json:"stockLevel"`
	MinThreshold float64 `gorm:"not null;default:10" json:"minThreshold"`
	Status       string  `gorm:"type:varchar(15);not null;default:'Healthy'" json:"status"`

	LastDeduction *time.Time `json:"lastDeduction,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// StockStatusFor derives the stock-health status from a level and its
// minimum threshold: Out at or below zero, Critical at or below half the
// threshold, Low at or below the threshold, Healthy above it.
func StockStatusFor(stockLevel, minThreshold float64) string {
	switch {
	case stockLevel <= 0:
		return StockStatusOut
	case stockLevel <= minThreshold*0.5:
		return StockStatusCritical
	case stockLevel <= minThreshold:
		return StockStatusLow
	default:
		return StockStatusHealthy
	}
}
