package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// WorkflowController exposes one endpoint per guest-lifecycle step. All
// state-machine logic lives in the workflow service; the controller only
// parses input and shapes the response.
type WorkflowController struct {
	Workflow *services.WorkflowService
}

func NewWorkflowController(db *gorm.DB) *WorkflowController {
	return &WorkflowController{Workflow: services.NewWorkflowService(db, nil)}
}

// NewWorkflowControllerWith lets callers share an already wired workflow
// service (main does this so the HTTP layer and the timer loop use the
// same one).
func NewWorkflowControllerWith(ws *services.WorkflowService) *WorkflowController {
	return &WorkflowController{Workflow: ws}
}

func parseTableID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return uint(id), true
}

// GuestArrived -> reserved/walk-in-blocked/available => occupied
func (wc *WorkflowController) GuestArrived(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	result, err := wc.Workflow.GuestArrived(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// WalkInBooking -> available => walk-in-blocked for 15 minutes
func (wc *WorkflowController) WalkInBooking(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		GuestCount   int    `json:"guestCount" binding:"required"`
		CustomerName string `json:"customerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.WalkInBooking(tableID, req.GuestCount, req.CustomerName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// WaiterAssigned -> waiter takes over an occupied table
func (wc *WorkflowController) WaiterAssigned(c *gin.Context) {
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

	result, err := wc.Workflow.WaiterAssigned(tableID, req.WaiterID, req.WaiterName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// OrderCreated -> link an order to the table
func (wc *WorkflowController) OrderCreated(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.OrderCreated(tableID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// OrderAccepted -> order confirmed and sent to kitchen
func (wc *WorkflowController) OrderAccepted(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.OrderAccepted(tableID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// OrderPreparing -> chef picked up the order; triggers stock deduction
func (wc *WorkflowController) OrderPreparing(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		OrderID              uint `json:"orderId"`
		ChefID               uint `json:"chefId"`
		EstimatedTimeMinutes int  `json:"estimatedTimeMinutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.OrderPreparing(tableID, req.OrderID, req.ChefID, req.EstimatedTimeMinutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// OrderReady -> kitchen done, table served
func (wc *WorkflowController) OrderReady(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.OrderReady(tableID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// BillGenerated -> bill attached to the served table
func (wc *WorkflowController) BillGenerated(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		OrderID     uint    `json:"orderId"`
		BillID      string  `json:"billId" binding:"required"`
		TotalAmount float64 `json:"totalAmount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.BillGenerated(tableID, req.BillID, req.TotalAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}

// PaymentCompleted -> payment recorded, cleaning window starts
func (wc *WorkflowController) PaymentCompleted(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		BillID         string  `json:"billId"`
		PaymentID      string  `json:"paymentId" binding:"required"`
		Amount         float64 `json:"amount" binding:"required"`
		PaymentMethod  string  `json:"paymentMethod"`
		OriginalStatus string  `json:"originalStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := wc.Workflow.PaymentCompleted(tableID,
		req.BillID, req.PaymentID, req.Amount, req.PaymentMethod, req.OriginalStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result.Message, result)
}
