package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-flow/kds"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// orderStatusFlow is the forward-edge map of the order state machine.
// "cancelled" is reachable from every non-terminal status; "completed"
// and "cancelled" are terminal.
var orderStatusFlow = map[string][]string{
	models.OrderStatusPlaced:    {models.OrderStatusAccepted, models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusAccepted:  {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusServed:    {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

// OrderStatuses is the fixed enumeration a target status must belong to.
var OrderStatuses = []string{
	models.OrderStatusPlaced,
	models.OrderStatusAccepted,
	models.OrderStatusPreparing,
	models.OrderStatusReady,
	models.OrderStatusServed,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

// OrderService is the order state machine.
type OrderService struct {
	DB         *gorm.DB
	Clock      Clock
	Deductions *DeductionService
	Audit      *AuditService
}

func NewOrderService(db *gorm.DB, clock Clock) *OrderService {
	if clock == nil {
		clock = SystemClock
	}
	return &OrderService{
		DB:         db,
		Clock:      clock,
		Deductions: NewDeductionService(db),
		Audit:      NewAuditService(db),
	}
}

// StatusUpdate reports one applied order transition.
type StatusUpdate struct {
	Order             *models.Order    `json:"order"`
	Status            string           `json:"status"`
	PreviousStatus    string           `json:"previousStatus"`
	InventoryDeducted bool             `json:"inventoryDeducted"`
	Deduction         *DeductionResult `json:"deductionResult,omitempty"`
}

// UpdateOrderStatus validates and applies one order transition.
//
// Side effects per target:
//   - preparing: stock deduction through the deduction engine, unless
//     deductInventory is false (re-prints). Partial deduction failures
//     never fail the transition.
//   - ready: inserts a kitchen-ready notification and broadcasts it.
//   - completed: payment status becomes "settled" unless already "paid".
//
// An unknown target or a missing edge is rejected with InvalidStatus and
// produces no side effect at all.
func (osvc *OrderService) UpdateOrderStatus(orderID uint, target string, deductInventory bool) (*StatusUpdate, error) {
	if !statusInSet(target, OrderStatuses) {
		return nil, &InvalidStatusError{Status: target, Valid: OrderStatuses}
	}

	var order models.Order
	if err := osvc.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}
		return nil, storeErr("order lookup", err)
	}

	previous := order.Status
	if !statusInSet(target, orderStatusFlow[previous]) {
		return nil, &InvalidStatusError{Status: target, Valid: orderStatusFlow[previous]}
	}

	now := osvc.Clock.Now()
	order.Status = target
	order.StatusUpdatedAt = &now
	switch target {
	case models.OrderStatusAccepted:
		order.SentToKitchenAt = &now
	case models.OrderStatusPreparing:
		order.PreparationStartedAt = &now
	case models.OrderStatusReady:
		order.ReadyAt = &now
	case models.OrderStatusServed:
		order.ServedAt = &now
	case models.OrderStatusCompleted:
		order.CompletedAt = &now
		if order.PaymentStatus != models.PaymentStatusPaid {
			order.PaymentStatus = models.PaymentStatusSettled
		}
	case models.OrderStatusCancelled:
		order.CancelledAt = &now
	}

	if err := osvc.DB.Save(&order).Error; err != nil {
		return nil, storeErr("order status update", err)
	}

	update := &StatusUpdate{
		Order:          &order,
		Status:         target,
		PreviousStatus: previous,
	}

	if target == models.OrderStatusPreparing && deductInventory && len(order.Items) > 0 {
		deduction, err := osvc.Deductions.DeductForOrder(order.ID, order.Items)
		if err != nil {
			// Deduction trouble is an inventory reporting gap, not a
			// reason to undo the kitchen transition.
			utils.ErrorLogger.Printf("Inventory deduction error for order %d: %v", order.ID, err)
		} else {
			update.Deduction = deduction
			update.InventoryDeducted = !deduction.AlreadyProcessed
		}
	}

	if target == models.OrderStatusReady {
		osvc.notifyOrderReady(&order)
	}

	kds.BroadcastOrderUpdate(order)
	osvc.Audit.Record("status_update", "order", fmt.Sprint(order.ID), map[string]interface{}{
		"newStatus":         target,
		"previousStatus":    previous,
		"inventoryDeducted": update.InventoryDeducted,
	})

	return update, nil
}

// CancelOrder is the soft delete: mark cancelled, never remove the row.
func (osvc *OrderService) CancelOrder(orderID uint) (*StatusUpdate, error) {
	return osvc.UpdateOrderStatus(orderID, models.OrderStatusCancelled, false)
}

func (osvc *OrderService) notifyOrderReady(order *models.Order) {
	message := fmt.Sprintf("Order %s is ready for serving", order.OrderNumber)
	notification := models.Notification{
		Type:        models.NotificationOrderReady,
		OrderID:     &order.ID,
		OrderNumber: &order.OrderNumber,
		TableID:     order.TableID,
		Message:     message,
	}
	if err := osvc.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Error creating ready notification for order %d: %v", order.ID, err)
		return
	}
	kds.BroadcastOrderReady(notification)
}

func statusInSet(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
