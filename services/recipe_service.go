package services

import (
	"errors"
	"strings"

	"github.com/yeremiapane/restaurant-flow/models"
	"gorm.io/gorm"
)

// RecipeService resolves menu items to their ingredient requirements.
type RecipeService struct {
	DB *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{DB: db}
}

// ResolveRecipe finds the recipe for an ordered item: by menu id first,
// then by a case-insensitive exact name match against the menu catalog.
// A nil recipe with a nil error means the item simply has no recipe
// (ad-hoc add-ons) - that is not a failure.
func (rs *RecipeService) ResolveRecipe(menuID uint, name string) (*models.Recipe, error) {
	if menuID != 0 {
		var recipe models.Recipe
		err := rs.DB.Preload("Ingredients").Where("menu_id = ?", menuID).First(&recipe).Error
		if err == nil {
			return &recipe, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeErr("recipe lookup", err)
		}
	}

	if name == "" {
		return nil, nil
	}

	var menu models.Menu
	err := rs.DB.Where("LOWER(name) = ?", strings.ToLower(name)).First(&menu).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("menu lookup", err)
	}

	var recipe models.Recipe
	err = rs.DB.Preload("Ingredients").Where("menu_id = ?", menu.ID).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr("recipe lookup", err)
	}
	return &recipe, nil
}

// IngredientAvailability is one required ingredient with current stock,
// used to check whether a dish can be prepared before accepting it.
type IngredientAvailability struct {
	IngredientID uint    `json:"ingredientId"`
	Name         string  `json:"name"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
	Status       string  `json:"status"`
	Sufficient   bool    `json:"sufficient"`
}

// IngredientsForMenu reports the required ingredients and whether stock
// currently covers one unit of the dish.
func (rs *RecipeService) IngredientsForMenu(menuName string) ([]IngredientAvailability, bool, error) {
	recipe, err := rs.ResolveRecipe(0, menuName)
	if err != nil {
		return nil, false, err
	}
	if recipe == nil {
		return nil, true, &NotFoundError{Resource: "recipe", ID: menuName}
	}

	report := make([]IngredientAvailability, 0, len(recipe.Ingredients))
	canPrepare := true
	for _, ri := range recipe.Ingredients {
		var ing models.Ingredient
		if err := rs.DB.First(&ing, ri.IngredientID).Error; err != nil {
			continue
		}
		sufficient := ing.StockLevel >= ri.Amount
		if !sufficient {
			canPrepare = false
		}
		report = append(report, IngredientAvailability{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Required:     ri.Amount,
			Available:    ing.StockLevel,
			Unit:         ing.Unit,
			Status:       ing.Status,
			Sufficient:   sufficient,
		})
	}
	return report, canPrepare, nil
}
