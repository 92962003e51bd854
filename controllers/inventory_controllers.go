package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/kds"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db, Inventory: services.NewInventoryService(db)}
}

// CreateIngredient -> register an ingredient with its threshold
func (ic *InventoryController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name         string  `json:"name" binding:"required"`
		Unit         string  `json:"unit" binding:"required"`
		Category     string  `json:"category"`
		StockLevel   float64 `json:"stockLevel"`
		MinThreshold float64 `json:"minThreshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.MinThreshold <= 0 {
		req.MinThreshold = 10
	}

	ingredient := models.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		Category:     req.Category,
		StockLevel:   req.StockLevel,
		MinThreshold: req.MinThreshold,
		Status:       models.StockStatusFor(req.StockLevel, req.MinThreshold),
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// GetAllIngredients -> optional status/category filters
func (ic *InventoryController) GetAllIngredients(c *gin.Context) {
	query := ic.DB.Model(&models.Ingredient{})
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var ingredients []models.Ingredient
	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

// GetIngredientByID
func (ic *InventoryController) GetIngredientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("ingredient_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient, err := ic.Inventory.GetIngredient(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient detail", ingredient)
}

// UpdateStock -> manual stock mutation (operation: add | deduct)
func (ic *InventoryController) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("ingredient_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Quantity  float64 `json:"quantity" binding:"required"`
		Operation string  `json:"operation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ingredient *models.Ingredient
	switch req.Operation {
	case "", "add":
		ingredient, err = ic.Inventory.RestockIngredient(uint(id), req.Quantity)
	case "deduct":
		ingredient, err = ic.Inventory.DeductStock(nil, uint(id), req.Quantity)
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown operation '%s'", req.Operation))
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if ingredient.Status != models.StockStatusHealthy {
		kds.BroadcastStockAlert(*ingredient)
	}
	utils.RespondJSON(c, http.StatusOK, "Stock updated", ingredient)
}

// GetLowStock -> everything at or below threshold
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	ingredients, err := ic.Inventory.LowStockIngredients()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock ingredients", ingredients)
}

// GetInventoryStats -> dashboard counters
func (ic *InventoryController) GetInventoryStats(c *gin.Context) {
	var total, low, out int64
	ic.DB.Model(&models.Ingredient{}).Count(&total)
	ic.DB.Model(&models.Ingredient{}).
		Where("status IN ?", []string{models.StockStatusLow, models.StockStatusCritical}).
		Count(&low)
	ic.DB.Model(&models.Ingredient{}).Where("status = ?", models.StockStatusOut).Count(&out)

	utils.RespondJSON(c, http.StatusOK, "Inventory stats", gin.H{
		"total":      total,
		"lowStock":   low,
		"outOfStock": out,
	})
}

// DeleteIngredient
func (ic *InventoryController) DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("ingredient_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ic.DB.Delete(&models.Ingredient{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", gin.H{"id": id})
}
