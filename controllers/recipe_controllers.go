package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

type RecipeController struct {
	DB         *gorm.DB
	Recipes    *services.RecipeService
	Deductions *services.DeductionService
}

func NewRecipeController(db *gorm.DB) *RecipeController {
	return &RecipeController{
		DB:         db,
		Recipes:    services.NewRecipeService(db),
		Deductions: services.NewDeductionService(db),
	}
}

// GetAllRecipes
func (rc *RecipeController) GetAllRecipes(c *gin.Context) {
	var recipes []models.Recipe
	if err := rc.DB.Preload("Ingredients").Find(&recipes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of recipes", recipes)
}

// GetRecipeByMenu -> recipe for one menu item; an empty ingredient list
// is returned (not 404) when the item simply has no recipe
func (rc *RecipeController) GetRecipeByMenu(c *gin.Context) {
	menuID, err := strconv.ParseUint(c.Param("menu_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var recipe models.Recipe
	if err := rc.DB.Preload("Ingredients").Where("menu_id = ?", menuID).First(&recipe).Error; err != nil {
		utils.RespondJSON(c, http.StatusOK, "Menu item has no recipe", gin.H{
			"menuId":      menuID,
			"ingredients": []models.RecipeIngredient{},
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recipe detail", recipe)
}

// UpsertRecipe -> create or replace the recipe for a menu item
func (rc *RecipeController) UpsertRecipe(c *gin.Context) {
	type IngredientReq struct {
		IngredientID uint    `json:"ingredientId" binding:"required"`
		Amount       float64 `json:"amount" binding:"required"`
	}
	var req struct {
		MenuID      uint            `json:"menuId" binding:"required"`
		Ingredients []IngredientReq `json:"ingredients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var recipe models.Recipe
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", req.MenuID).First(&recipe).Error; err == nil {
			// Replace the ingredient list of the existing recipe.
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
		} else {
			recipe = models.Recipe{MenuID: req.MenuID}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
		}

		for _, ing := range req.Ingredients {
			ri := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.IngredientID,
				Amount:       ing.Amount,
			}
			if err := tx.Create(&ri).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := rc.DB.Preload("Ingredients").First(&recipe, recipe.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recipe saved", recipe)
}

// DeleteRecipe
func (rc *RecipeController) DeleteRecipe(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("recipe_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recipe deleted", gin.H{"id": id})
}

// DeductForOrder -> apply the idempotent stock deduction for an order.
// Normally triggered by the order state machine; exposed for manual
// re-runs which the idempotency guard makes safe.
func (rc *RecipeController) DeductForOrder(c *gin.Context) {
	type ItemReq struct {
		MenuID   uint   `json:"menuItemId"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity" binding:"required"`
	}
	var req struct {
		OrderID uint      `json:"orderId" binding:"required"`
		Items   []ItemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			MenuID:   item.MenuID,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	result, err := rc.Deductions.DeductForOrder(req.OrderID, items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Inventory deducted"
	if result.AlreadyProcessed {
		message = "Already processed"
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}

// IngredientsForItem -> required ingredients and availability for one
// menu item by name, to check before accepting an order
func (rc *RecipeController) IngredientsForItem(c *gin.Context) {
	menuName := c.Param("menu_name")

	report, canPrepare, err := rc.Recipes.IngredientsForMenu(menuName)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			utils.RespondJSON(c, http.StatusOK, "Menu item has no recipe", gin.H{
				"menuItem":    menuName,
				"ingredients": []services.IngredientAvailability{},
				"hasRecipe":   false,
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredients for item", gin.H{
		"menuItem":    menuName,
		"ingredients": report,
		"hasRecipe":   true,
		"canPrepare":  canPrepare,
	})
}
