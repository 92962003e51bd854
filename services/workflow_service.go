package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// StepResult is the uniform envelope every lifecycle step returns, so a
// caller can drive a wizard-like UI without re-deriving the state
// machine.
type StepResult struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	Status   string                 `json:"status"`
	NextStep string                 `json:"nextStep"`
	Extra    map[string]interface{} `json:"extra,omitempty"`
}

// WorkflowService is the façade sequencing table, order, deduction and
// scheduler calls per guest-lifecycle step. It is the only entry point
// the HTTP layer uses for lifecycle transitions.
//
// Cross-entity effects (table and order) are two independent,
// individually-atomic writes: the table write is authoritative for the
// step, the paired order write is applied best-effort and logged on
// failure, never rolled into one transaction.
type WorkflowService struct {
	DB     *gorm.DB
	Clock  Clock
	Tables *TableService
	Orders *OrderService
	Timers *TimerService
}

// NewWorkflowService wires the full lifecycle stack. Passing a nil clock
// selects the wall clock.
func NewWorkflowService(db *gorm.DB, clock Clock) *WorkflowService {
	if clock == nil {
		clock = SystemClock
	}
	tables := NewTableService(db, clock)
	timers := NewTimerService(db, clock)
	tables.Timers = timers
	timers.Tables = tables

	return &WorkflowService{
		DB:     db,
		Clock:  clock,
		Tables: tables,
		Orders: NewOrderService(db, clock),
		Timers: timers,
	}
}

// GuestArrived handles physical arrival at a reserved/blocked/free table.
func (ws *WorkflowService) GuestArrived(tableID uint) (*StepResult, error) {
	table, err := ws.Tables.GuestArrived(tableID)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success:  true,
		Message:  "Guest arrived. Ready for waiter assignment.",
		Status:   table.Status,
		NextStep: "assign_waiter",
	}, nil
}

// WalkInBooking blocks a table for a walk-in party for 15 minutes.
func (ws *WorkflowService) WalkInBooking(tableID uint, guestCount int, customerName string) (*StepResult, error) {
	table, err := ws.Tables.WalkInBooking(tableID, guestCount, customerName)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success: true,
		Message: fmt.Sprintf("Table blocked for 15 minutes (until %s). Guest must arrive to proceed.",
			table.BlockingTimeout.Format("15:04:05")),
		Status:   table.Status,
		NextStep: "wait_for_guest_arrival",
		Extra: map[string]interface{}{
			"blockingTimeout": table.BlockingTimeout,
		},
	}, nil
}

// WaiterAssigned records the waiter taking over the table.
func (ws *WorkflowService) WaiterAssigned(tableID, waiterID uint, waiterName string) (*StepResult, error) {
	table, err := ws.Tables.AssignWaiter(tableID, waiterID, waiterName)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success:  true,
		Message:  fmt.Sprintf("Waiter %s assigned. Ready to take order.", waiterName),
		Status:   table.Status,
		NextStep: "take_order",
	}, nil
}

// OrderCreated links a new order to the table.
func (ws *WorkflowService) OrderCreated(tableID, orderID uint) (*StepResult, error) {
	table, err := ws.Tables.OrderCreated(tableID, orderID)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success:  true,
		Message:  "Order created and linked to table",
		Status:   table.Status,
		NextStep: "order_acceptance",
	}, nil
}

// OrderAccepted confirms the order and sends it to the kitchen.
func (ws *WorkflowService) OrderAccepted(tableID, orderID uint) (*StepResult, error) {
	table, err := ws.Tables.OrderAccepted(tableID)
	if err != nil {
		return nil, err
	}

	if orderID != 0 {
		if _, err := ws.Orders.UpdateOrderStatus(orderID, models.OrderStatusAccepted, false); err != nil {
			utils.ErrorLogger.Printf("Warning: could not update order %d status: %v", orderID, err)
		}
	}

	return &StepResult{
		Success:  true,
		Message:  "Order accepted and sent to kitchen",
		Status:   table.Status,
		NextStep: "kitchen_prepares",
		Extra: map[string]interface{}{
			"kitchenStatus": "new_order",
		},
	}, nil
}

// OrderPreparing records the chef picking up the order; this is the step
// that triggers the stock deduction (inside the order state machine).
func (ws *WorkflowService) OrderPreparing(tableID, orderID, chefID uint, estimatedMinutes int) (*StepResult, error) {
	table, err := ws.Tables.OrderPreparing(tableID, estimatedMinutes)
	if err != nil {
		return nil, err
	}

	if orderID != 0 {
		if chefID != 0 {
			if err := ws.DB.Model(&models.Order{}).Where("id = ?", orderID).
				Update("chef_id", chefID).Error; err != nil {
				utils.ErrorLogger.Printf("Warning: could not assign chef to order %d: %v", orderID, err)
			}
		}
		if _, err := ws.Orders.UpdateOrderStatus(orderID, models.OrderStatusPreparing, true); err != nil {
			utils.ErrorLogger.Printf("Warning: could not update order %d status: %v", orderID, err)
		}
	}

	return &StepResult{
		Success:  true,
		Message:  "Chef started preparing order",
		Status:   table.Status,
		NextStep: "order_ready",
		Extra: map[string]interface{}{
			"kitchenStatus":      "preparing",
			"estimatedReadyTime": table.EstimatedReadyTime,
		},
	}, nil
}

// OrderReady marks the order finished and the table served.
func (ws *WorkflowService) OrderReady(tableID, orderID uint) (*StepResult, error) {
	table, err := ws.Tables.OrderReady(tableID)
	if err != nil {
		return nil, err
	}

	if orderID != 0 {
		if _, err := ws.Orders.UpdateOrderStatus(orderID, models.OrderStatusReady, false); err != nil {
			utils.ErrorLogger.Printf("Warning: could not update order %d status: %v", orderID, err)
		}
	}

	return &StepResult{
		Success:  true,
		Message:  "Order ready and served",
		Status:   table.Status,
		NextStep: "bill_generation",
		Extra: map[string]interface{}{
			"kitchenStatus": "ready",
		},
	}, nil
}

// BillGenerated attaches the bill to the table.
func (ws *WorkflowService) BillGenerated(tableID uint, billID string, amount float64) (*StepResult, error) {
	table, err := ws.Tables.BillGenerated(tableID, billID, amount)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success:  true,
		Message:  fmt.Sprintf("Bill generated (total %s)", utils.FormatCurrencyIDR(amount)),
		Status:   table.Status,
		NextStep: "payment_processing",
	}, nil
}

// PaymentCompleted records the payment and rolls the table into its
// cleaning window.
func (ws *WorkflowService) PaymentCompleted(tableID uint, billID, paymentID string, amount float64, method, originalStatus string) (*StepResult, error) {
	table, err := ws.Tables.PaymentCompleted(tableID, billID, paymentID, amount, method, originalStatus)
	if err != nil {
		return nil, err
	}
	return &StepResult{
		Success:  true,
		Message:  "Payment completed. Table now cleaning (ready in 5 minutes)",
		Status:   table.Status,
		NextStep: "cleaning",
		Extra: map[string]interface{}{
			"cleaningEndTime": table.CleaningEndTime,
			"nextStatus":      table.OriginalStatus,
		},
	}, nil
}
