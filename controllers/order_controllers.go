package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-flow/kds"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/services"
	"github.com/yeremiapane/restaurant-flow/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// GetAllOrders -> list orders with items, optional status/type/table filters
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items")

	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if orderType := c.Query("type"); orderType != "" && orderType != "all" {
		query = query.Where("type = ?", orderType)
	}
	if tableID := c.Query("table_id"); tableID != "" {
		query = query.Where("table_id = ?", tableID)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> new order (status 'placed') with a sequential order number
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ItemReq struct {
		MenuID   uint    `json:"menuId"`
		Name     string  `json:"name"`
		Quantity int     `json:"quantity" binding:"required"`
		Price    float64 `json:"price"`
		Notes    string  `json:"notes"`
	}

	var req struct {
		TableID *uint     `json:"tableId"`
		Type    string    `json:"type"`
		Items   []ItemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderType := req.Type
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Count(&count).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		order = models.Order{
			OrderNumber:     models.FormatOrderNumber(count + 1),
			Status:          models.OrderStatusPlaced,
			Type:            orderType,
			TableID:         req.TableID,
			PaymentStatus:   models.PaymentStatusUnpaid,
			StatusUpdatedAt: &now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range req.Items {
			price := item.Price
			name := item.Name

			// Catalog items carry their own price and name.
			if item.MenuID != 0 {
				var menu models.Menu
				if err := tx.First(&menu, item.MenuID).Error; err == nil {
					price = menu.Price
					if name == "" {
						name = menu.Name
					}
				}
			}
			total += price * float64(item.Quantity)

			orderItem := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   item.MenuID,
				Name:     name,
				Quantity: item.Quantity,
				Price:    price,
				Notes:    item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		order.Total = total
		return tx.Save(&order).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := oc.DB.Preload("Items").First(&order, order.ID).Error; err == nil {
		kds.BroadcastOrderUpdate(order)
	}

	utils.InfoLogger.Printf("Order %s created (total=%.2f)", order.OrderNumber, order.Total)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> drive the order state machine. The
// `deduct_inventory` query flag (default true) suppresses the stock
// deduction for re-prints.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	deductInventory := c.DefaultQuery("deduct_inventory", "true") != "false"

	update, err := oc.Orders.UpdateOrderStatus(uint(id), req.Status, deductInventory)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", update)
}

// CancelOrder -> soft delete; the order row is never removed
func (oc *OrderController) CancelOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	update, err := oc.Orders.CancelOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", update)
}

// GetKitchenQueue -> orders the kitchen still cares about, oldest first
func (oc *OrderController) GetKitchenQueue(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("status IN ?", []string{
			models.OrderStatusPlaced,
			models.OrderStatusAccepted,
			models.OrderStatusPreparing,
			models.OrderStatusReady,
		}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen queue", orders)
}
