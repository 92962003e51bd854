package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// categoryListing is one category with how many menu items it holds.
type categoryListing struct {
	models.MenuCategory
	MenuCount int64 `json:"menuCount"`
}

// GetAllCategories -> every category with its menu count
func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := mcc.DB.Order("name asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	listings := make([]categoryListing, 0, len(categories))
	for _, category := range categories {
		var count int64
		mcc.DB.Model(&models.Menu{}).Where("category_id = ?", category.ID).Count(&count)
		listings = append(listings, categoryListing{MenuCategory: category, MenuCount: count})
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", listings)
}

// CreateCategory -> new category; names are unique case-insensitively
func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing int64
	mcc.DB.Model(&models.MenuCategory{}).Where("LOWER(name) = LOWER(?)", req.Name).Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("category '%s' already exists", req.Name))
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := mcc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetCategoryByID
func (mcc *MenuCategoryController) GetCategoryByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cat_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mcc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

// UpdateCategory -> rename, keeping the unique-name guard
func (mcc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cat_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mcc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var clash int64
	mcc.DB.Model(&models.MenuCategory{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", req.Name, category.ID).
		Count(&clash)
	if clash > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("category '%s' already exists", req.Name))
		return
	}

	category.Name = req.Name
	if err := mcc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory -> refused while menu items still reference it, so the
// recipe resolver's catalog fallback never dangles.
func (mcc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cat_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mcc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var menus int64
	mcc.DB.Model(&models.Menu{}).Where("category_id = ?", category.ID).Count(&menus)
	if menus > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("category '%s' still has %d menu items", category.Name, menus))
		return
	}

	if err := mcc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}
