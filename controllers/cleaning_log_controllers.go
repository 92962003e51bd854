package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

type CleaningLogController struct {
	DB *gorm.DB
}

func NewCleaningLogController(db *gorm.DB) *CleaningLogController {
	return &CleaningLogController{DB: db}
}

// GetAllCleaningLogs
// Endpoint: GET /cleaning-logs?status=in_progress&table_id=3
func (clc *CleaningLogController) GetAllCleaningLogs(c *gin.Context) {
	query := clc.DB.Preload("Table").Order("started_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if tableID := c.Query("table_id"); tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	var logs []models.CleaningLog
	if err := query.Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning logs", logs)
}

// GetCleaningLogByID
func (clc *CleaningLogController) GetCleaningLogByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("clean_id"))

	var logEntry models.CleaningLog
	if err := clc.DB.Preload("Table").First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log detail", logEntry)
}

// AssignCleaner attaches a cleaner to an open cleaning cycle. The cycle
// itself is opened by the payment-completed step and closed by the
// cleaning timer or a manual mark-clean, never through this endpoint.
func (clc *CleaningLogController) AssignCleaner(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("clean_id"))

	var body struct {
		CleanerID uint `json:"cleanerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var logEntry models.CleaningLog
	if err := clc.DB.First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	logEntry.CleanerID = &body.CleanerID
	if err := clc.DB.Save(&logEntry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaner assigned", logEntry)
}

// DeleteCleaningLog
func (clc *CleaningLogController) DeleteCleaningLog(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("clean_id"))

	if err := clc.DB.Delete(&models.CleaningLog{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log deleted", gin.H{"clean_id": id})
}
