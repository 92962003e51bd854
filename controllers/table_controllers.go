package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/kds"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB     *gorm.DB
	Tables *services.TableService
}

func NewTableController(db *gorm.DB, tables *services.TableService) *TableController {
	return &TableController{DB: db, Tables: tables}
}

// CreateTable -> register a new physical table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"tableNumber" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("capacity must be positive"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      models.TableStatusAvailable,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableCreate(table)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list every table
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindTablesByStatus -> e.g. list available tables
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableStatusAvailable
	}
	var tables []models.Table
	if err := tc.DB.Where("status = ?", status).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// DeleteTable -> remove a table. Only allowed while it is available; a
// table mid-lifecycle must finish its cycle first.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.Status != models.TableStatusAvailable {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("cannot delete table in '%s' status", table.Status))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableDelete(table.ID)
	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// AssignWaiter -> put a waiter on an occupied/eating table
func (tc *TableController) AssignWaiter(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		WaiterID   uint   `json:"waiterId" binding:"required"`
		WaiterName string `json:"waiterName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.AssignWaiter(tableID, req.WaiterID, req.WaiterName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter assigned", table)
}

// RemoveWaiter -> clear the waiter assignment
func (tc *TableController) RemoveWaiter(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	table, err := tc.Tables.RemoveWaiter(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter removed", table)
}

// MarkTableClean -> staff finishes cleaning early, without waiting for
// the timer. The later timer fire becomes a no-op.
func (tc *TableController) MarkTableClean(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	acted, err := tc.Tables.CompleteCleaning(tableID, "")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !acted {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("table is not in cleaning status"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table marked as clean", table)
}

// GetTableStats -> floor overview counters
func (tc *TableController) GetTableStats(c *gin.Context) {
	stats := make(map[string]int64, len(models.TableStatuses)+1)
	var total int64

	for _, status := range models.TableStatuses {
		var count int64
		tc.DB.Model(&models.Table{}).Where("status = ?", status).Count(&count)
		stats[status] = count
		total += count
	}
	stats["total"] = total

	utils.RespondJSON(c, http.StatusOK, "Table stats", stats)
}
