package models

import "time"

// DeductionLog is the durable fact "this order's ingredients have been
// deducted". The unique index on OrderID is the idempotency guard: the
// row is inserted as a claim before any stock is touched, so two
// concurrent start-preparing calls race on the insert and the loser
// performs no mutation.
type DeductionLog struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"uniqueIndex;not null" json:"orderId"`

	// JSON-encoded []DeductedIngredient / []string, filled in by the
	// claim winner once the deduction finishes.
	Deducted string `gorm:"type:text" json:"deducted"`
	Errors   string `gorm:"type:text" json:"errors"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// DeductedIngredient is one applied stock mutation inside a deduction.
type DeductedIngredient struct {
	IngredientID uint    `json:"ingredientId"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	NewStock     float64 `json:"newStock"`
	Status       string  `json:"status"`
}
