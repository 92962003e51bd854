package services

import (
	"encoding/json"
	"fmt"

	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// DeductionService applies a single, idempotent stock deduction per
// order when the kitchen starts preparing it.
type DeductionService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Recipes   *RecipeService
}

func NewDeductionService(db *gorm.DB) *DeductionService {
	return &DeductionService{
		DB:        db,
		Inventory: NewInventoryService(db),
		Recipes:   NewRecipeService(db),
	}
}

// DeductionResult is what one deduction call produced. Errors are
// non-fatal: an order may contain items with no recipe, and failing the
// whole order over an unmapped garnish is worse than an inventory
// reporting gap.
type DeductionResult struct {
	AlreadyProcessed bool                        `json:"alreadyProcessed"`
	Deducted         []models.DeductedIngredient `json:"deducted"`
	Errors           []string                    `json:"errors,omitempty"`
}

// DeductForOrder resolves every line item to a recipe and deducts the
// required ingredients, exactly once per order id.
//
// The deduction log row is inserted as a claim (unique key on order_id)
// before any stock is touched. Two concurrent start-preparing calls race
// on that insert; the loser returns AlreadyProcessed without mutating
// anything. The claim winner fills the row with its results at the end,
// so a partially-successful deduction is never retried or double-applied.
func (ds *DeductionService) DeductForOrder(orderID uint, items []models.OrderItem) (*DeductionResult, error) {
	if orderID == 0 || len(items) == 0 {
		return nil, &ValidationError{Message: "orderId and items are required"}
	}

	// Fast path: order already deducted.
	var existing models.DeductionLog
	if err := ds.DB.Where("order_id = ?", orderID).First(&existing).Error; err == nil {
		return &DeductionResult{AlreadyProcessed: true}, nil
	}

	// Claim the order. A duplicate-key failure here means another call
	// won the race since the check above.
	claim := models.DeductionLog{OrderID: orderID}
	if err := ds.DB.Create(&claim).Error; err != nil {
		var lost models.DeductionLog
		if lookupErr := ds.DB.Where("order_id = ?", orderID).First(&lost).Error; lookupErr == nil {
			return &DeductionResult{AlreadyProcessed: true}, nil
		}
		return nil, storeErr("deduction claim", err)
	}

	result := &DeductionResult{Deducted: []models.DeductedIngredient{}}

	for _, item := range items {
		recipe, err := ds.Recipes.ResolveRecipe(item.MenuID, item.Name)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("No recipe found for '%s'", item.Name))
			continue
		}

		for _, ri := range recipe.Ingredients {
			total := ri.Amount * float64(item.Quantity)
			ing, err := ds.Inventory.DeductStock(ds.DB, ri.IngredientID, total)
			if err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Error deducting ingredient %d: %v", ri.IngredientID, err))
				continue
			}
			result.Deducted = append(result.Deducted, models.DeductedIngredient{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Amount:       total,
				Unit:         ing.Unit,
				NewStock:     ing.StockLevel,
				Status:       ing.Status,
			})
		}
	}

	// Durably record what happened, including partial failures.
	if raw, err := json.Marshal(result.Deducted); err == nil {
		claim.Deducted = string(raw)
	}
	if len(result.Errors) > 0 {
		if raw, err := json.Marshal(result.Errors); err == nil {
			claim.Errors = string(raw)
		}
		utils.ErrorLogger.Printf("Partial deduction for order %d: %v", orderID, result.Errors)
	}
	if err := ds.DB.Save(&claim).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to record deduction details for order %d: %v", orderID, err)
	}

	return result, nil
}
