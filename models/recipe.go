package models

import "time"

// Recipe maps one menu item to the ingredients consumed per unit sold.
type Recipe struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	MenuID      uint               `gorm:"uniqueIndex;not null" json:"menuId"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt   time.Time          `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time          `gorm:"not null" json:"updatedAt"`
}

type RecipeIngredient struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RecipeID     uint        `gorm:"not null;index" json:"recipeId"`
	IngredientID uint        `gorm:"not null" json:"ingredientId"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"ingredient,omitempty"`
	// Amount consumed per ordered unit, in the ingredient's unit.
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
