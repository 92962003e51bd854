package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-flow/models"
	"gorm.io/gorm"
)

// InventoryService is the stock ledger: it owns every mutation of
// ingredient stock levels and keeps the derived stock-health status in
// step with them.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// DeductStock removes amount from an ingredient's stock, clamped at
// zero. The subtraction runs as a single conditional UPDATE so that
// concurrent orders deducting the same ingredient never interleave a
// read-then-write; the derived status is recomputed from the value the
// statement actually produced.
func (is *InventoryService) DeductStock(tx *gorm.DB, ingredientID uint, amount float64) (*models.Ingredient, error) {
	if tx == nil {
		tx = is.DB
	}

	res := tx.Model(&models.Ingredient{}).
		Where("id = ?", ingredientID).
		Update("stock_level", gorm.Expr(
			"CASE WHEN stock_level > ? THEN stock_level - ? ELSE 0 END", amount, amount))
	if res.Error != nil {
		return nil, storeErr("stock deduction", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "ingredient", ID: fmt.Sprint(ingredientID)}
	}

	var ing models.Ingredient
	if err := tx.First(&ing, ingredientID).Error; err != nil {
		return nil, storeErr("stock read-back", err)
	}

	now := time.Now().UTC()
	ing.Status = models.StockStatusFor(ing.StockLevel, ing.MinThreshold)
	ing.LastDeduction = &now
	if err := tx.Model(&ing).Updates(map[string]interface{}{
		"status":         ing.Status,
		"last_deduction": now,
	}).Error; err != nil {
		return nil, storeErr("stock status update", err)
	}

	return &ing, nil
}

// RestockIngredient adds quantity back to stock (deliveries, manual
// corrections) and recomputes the derived status.
func (is *InventoryService) RestockIngredient(ingredientID uint, quantity float64) (*models.Ingredient, error) {
	if quantity < 0 {
		return nil, &ValidationError{Message: "restock quantity must be positive"}
	}

	res := is.DB.Model(&models.Ingredient{}).
		Where("id = ?", ingredientID).
		Update("stock_level", gorm.Expr("stock_level + ?", quantity))
	if res.Error != nil {
		return nil, storeErr("restock", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: "ingredient", ID: fmt.Sprint(ingredientID)}
	}

	var ing models.Ingredient
	if err := is.DB.First(&ing, ingredientID).Error; err != nil {
		return nil, storeErr("restock read-back", err)
	}

	ing.Status = models.StockStatusFor(ing.StockLevel, ing.MinThreshold)
	if err := is.DB.Model(&ing).Update("status", ing.Status).Error; err != nil {
		return nil, storeErr("restock status update", err)
	}
	return &ing, nil
}

// GetIngredient loads one ingredient.
func (is *InventoryService) GetIngredient(ingredientID uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := is.DB.First(&ing, ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "ingredient", ID: fmt.Sprint(ingredientID)}
		}
		return nil, storeErr("ingredient lookup", err)
	}
	return &ing, nil
}

// LowStockIngredients lists everything at or below its threshold.
func (is *InventoryService) LowStockIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := is.DB.
		Where("status IN ?", []string{models.StockStatusLow, models.StockStatusCritical, models.StockStatusOut}).
		Order("stock_level asc").
		Find(&ingredients).Error
	if err != nil {
		return nil, storeErr("low stock query", err)
	}
	return ingredients, nil
}
