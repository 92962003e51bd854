package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-flow/kds"
	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/gorm"
)

// TableService is the table state machine. Every transition is an
// explicit method that validates the table's current status before
// mutating anything; an unexpected current status is a precondition
// failure, never a silent coercion.
type TableService struct {
	DB    *gorm.DB
	Clock Clock
	// Timers is wired after construction (the timer service fires back
	// into this one).
	Timers *TimerService
	Audit  *AuditService
}

func NewTableService(db *gorm.DB, clock Clock) *TableService {
	if clock == nil {
		clock = SystemClock
	}
	return &TableService{
		DB:    db,
		Clock: clock,
		Audit: NewAuditService(db),
	}
}

func (tsvc *TableService) loadTable(tableID uint) (*models.Table, error) {
	var table models.Table
	if err := tsvc.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "table", ID: fmt.Sprint(tableID)}
		}
		return nil, storeErr("table lookup", err)
	}
	return &table, nil
}

func (tsvc *TableService) saveTable(table *models.Table) error {
	if err := tsvc.DB.Save(table).Error; err != nil {
		return storeErr("table update", err)
	}
	kds.BroadcastTableUpdate(*table)
	return nil
}

// scheduleTimer arms a durable timer when a timer service is wired. A
// standalone table service (no timer loop) still applies the transition;
// the missing expiry is correctable by a manual step later.
func (tsvc *TableService) scheduleTimer(tableID uint, kind, expectedStatus, restoreStatus string, fireAt time.Time) error {
	if tsvc.Timers == nil {
		return fmt.Errorf("no timer service wired, %s timer for table %d not armed", kind, tableID)
	}
	return tsvc.Timers.Schedule(tableID, kind, expectedStatus, restoreStatus, fireAt)
}

func (tsvc *TableService) requireStatus(table *models.Table, expected ...string) error {
	if !statusInSet(table.Status, expected) {
		return &PreconditionError{
			Resource: fmt.Sprintf("table %d", table.ID),
			Expected: expected,
			Actual:   table.Status,
		}
	}
	return nil
}

// WalkInBooking blocks an available table for a walk-in party pending
// physical arrival. The block expires automatically after
// WalkInBlockDuration if the guest never shows up.
func (tsvc *TableService) WalkInBooking(tableID uint, guestCount int, customerName string) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusAvailable); err != nil {
		return nil, err
	}
	if guestCount <= 0 {
		return nil, &ValidationError{Message: "guestCount must be positive"}
	}
	if guestCount > table.Capacity {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"Guest count (%d) exceeds table capacity (%d)", guestCount, table.Capacity)}
	}

	now := tsvc.Clock.Now()
	blockingUntil := now.Add(WalkInBlockDuration)
	walkIn := "walk-in"
	waiting := "waiting_for_arrival"

	table.Status = models.TableStatusWalkInBlocked
	table.BlockingStartTime = &now
	table.BlockingTimeout = &blockingUntil
	table.GuestCount = &guestCount
	table.CustomerName = &customerName
	table.ReservationType = &walkIn
	table.ReservationStatus = &waiting

	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	if err := tsvc.scheduleTimer(table.ID, models.TimerKindWalkInExpiry,
		models.TableStatusWalkInBlocked, "", blockingUntil); err != nil {
		utils.ErrorLogger.Printf("Failed to schedule walk-in expiry for table %d: %v", table.ID, err)
	}

	tsvc.Audit.Record("walk_in_booking", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"customerName":  customerName,
		"guestCount":    guestCount,
		"blockingUntil": blockingUntil,
	})
	return table, nil
}

// GuestArrived moves a reserved/blocked/free table to occupied. Arriving
// supersedes any pending walk-in expiry timer; the timer's fire becomes a
// verified no-op.
func (tsvc *TableService) GuestArrived(tableID uint) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table,
		models.TableStatusReserved, models.TableStatusWalkInBlocked, models.TableStatusAvailable); err != nil {
		return nil, err
	}

	now := tsvc.Clock.Now()
	arrived := "arrived"

	table.Status = models.TableStatusOccupied
	table.OccupiedAt = &now
	table.ArrivalTime = &now
	table.ReservationStatus = &arrived
	table.BlockingTimeout = nil

	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("guest_arrived", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"newStatus": models.TableStatusOccupied,
	})
	return table, nil
}

// AssignWaiter sets the waiter on a table. Waiter assignment is an
// orthogonal attribute mutation, permitted only while guests are seated.
func (tsvc *TableService) AssignWaiter(tableID, waiterID uint, waiterName string) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusOccupied, models.TableStatusEating); err != nil {
		return nil, err
	}

	table.WaiterID = &waiterID
	table.WaiterName = &waiterName
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("assign_waiter", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"waiterId":   waiterID,
		"waiterName": waiterName,
	})
	return table, nil
}

// RemoveWaiter clears the waiter assignment.
func (tsvc *TableService) RemoveWaiter(tableID uint) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusOccupied, models.TableStatusEating); err != nil {
		return nil, err
	}

	table.WaiterID = nil
	table.WaiterName = nil
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("remove_waiter", "table", fmt.Sprint(table.ID), nil)
	return table, nil
}

// OrderCreated links a freshly created order to the table. Exactly one
// active order may be attached at a time.
func (tsvc *TableService) OrderCreated(tableID, orderID uint) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusOccupied); err != nil {
		return nil, err
	}
	if table.CurrentOrderID != nil && *table.CurrentOrderID != orderID {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"table %d already has active order %d", table.ID, *table.CurrentOrderID)}
	}

	now := tsvc.Clock.Now()
	table.CurrentOrderID = &orderID
	table.OrderCreatedAt = &now
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("order_created", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"orderId": orderID,
	})
	return table, nil
}

// OrderAccepted marks the attached order as sent to the kitchen.
func (tsvc *TableService) OrderAccepted(tableID uint) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusOccupied); err != nil {
		return nil, err
	}
	if table.CurrentOrderID == nil {
		return nil, &ValidationError{Message: fmt.Sprintf("table %d has no attached order", table.ID)}
	}

	now := tsvc.Clock.Now()
	table.Status = models.TableStatusOrderAccepted
	table.OrderAcceptedAt = &now
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("order_accepted", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"orderId": *table.CurrentOrderID,
	})
	return table, nil
}

// OrderPreparing records that the kitchen started cooking; guests are
// waiting/eating from here on.
func (tsvc *TableService) OrderPreparing(tableID uint, estimatedMinutes int) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusOrderAccepted); err != nil {
		return nil, err
	}

	now := tsvc.Clock.Now()
	table.Status = models.TableStatusEating
	table.PreparationStartedAt = &now
	if estimatedMinutes > 0 {
		eta := now.Add(time.Duration(estimatedMinutes) * time.Minute)
		table.EstimatedReadyTime = &eta
	}
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("order_preparing", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"estimatedTimeMinutes": estimatedMinutes,
	})
	return table, nil
}

// OrderReady moves the table to served once the kitchen finishes. Legal
// from any active seated state.
func (tsvc *TableService) OrderReady(tableID uint) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table,
		models.TableStatusOccupied, models.TableStatusOrderAccepted, models.TableStatusEating); err != nil {
		return nil, err
	}

	now := tsvc.Clock.Now()
	table.Status = models.TableStatusServed
	table.OrderReadyAt = &now
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("order_ready", "table", fmt.Sprint(table.ID), nil)
	return table, nil
}

// BillGenerated attaches bill references to a served table.
func (tsvc *TableService) BillGenerated(tableID uint, billID string, amount float64) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusServed); err != nil {
		return nil, err
	}

	table.BillGenerated = true
	table.BillID = &billID
	table.BillAmount = &amount
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	tsvc.Audit.Record("bill_generated", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"billId": billID,
		"amount": amount,
	})
	return table, nil
}

// PaymentCompleted records the payment, checks the table out and starts
// the cleaning window in the same call. After CleaningDuration the table
// returns to originalStatus (default available).
func (tsvc *TableService) PaymentCompleted(tableID uint, billID, paymentID string, amount float64, method, originalStatus string) (*models.Table, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return nil, err
	}
	if err := tsvc.requireStatus(table, models.TableStatusServed); err != nil {
		return nil, err
	}

	now := tsvc.Clock.Now()
	if originalStatus == "" {
		originalStatus = models.TableStatusAvailable
	}

	table.Status = models.TableStatusCheckedOut
	table.BillID = &billID
	table.PaymentID = &paymentID
	table.BillAmount = &amount
	table.PaymentMethod = &method
	table.PaymentCompletedAt = &now
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	// Immediately roll into cleaning; checked_out is never observed as a
	// resting state.
	cleaningEnd := now.Add(CleaningDuration)
	table.Status = models.TableStatusCleaning
	table.CleaningStartedAt = &now
	table.CleaningEndTime = &cleaningEnd
	table.OriginalStatus = &originalStatus
	if err := tsvc.saveTable(table); err != nil {
		return nil, err
	}

	cleaningLog := models.CleaningLog{
		TableID:   table.ID,
		Status:    "in_progress",
		StartedAt: now,
	}
	if err := tsvc.DB.Create(&cleaningLog).Error; err != nil {
		utils.ErrorLogger.Printf("Error opening cleaning log for table %d: %v", table.ID, err)
	}

	if err := tsvc.scheduleTimer(table.ID, models.TimerKindCleaningComplete,
		models.TableStatusCleaning, originalStatus, cleaningEnd); err != nil {
		utils.ErrorLogger.Printf("Failed to schedule cleaning completion for table %d: %v", table.ID, err)
	}

	tsvc.Audit.Record("payment_completed", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"paymentId": paymentID,
		"amount":    amount,
		"method":    method,
	})
	return table, nil
}

// CompleteCleaning restores a cleaning table to its original status and
// clears every transient guest/order/billing field. Returns false
// without acting when the table is no longer cleaning (guard-on-fire).
func (tsvc *TableService) CompleteCleaning(tableID uint, restoreStatus string) (bool, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return false, err
	}
	if table.Status != models.TableStatusCleaning {
		return false, nil
	}

	if restoreStatus == "" {
		if table.OriginalStatus != nil {
			restoreStatus = *table.OriginalStatus
		} else {
			restoreStatus = models.TableStatusAvailable
		}
	}

	table.Status = restoreStatus
	table.ClearGuestData()
	if err := tsvc.saveTable(table); err != nil {
		return false, err
	}

	now := tsvc.Clock.Now()
	if err := tsvc.DB.Model(&models.CleaningLog{}).
		Where("table_id = ? AND status = ?", table.ID, "in_progress").
		Updates(map[string]interface{}{"status": "done", "ended_at": now}).Error; err != nil {
		utils.ErrorLogger.Printf("Error closing cleaning log for table %d: %v", table.ID, err)
	}

	tsvc.Audit.Record("cleaning_completed", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"newStatus": restoreStatus,
	})
	return true, nil
}

// ExpireWalkIn releases a table whose walk-in party never arrived.
// Returns false without acting when the table already moved on
// (guard-on-fire).
func (tsvc *TableService) ExpireWalkIn(tableID uint) (bool, error) {
	table, err := tsvc.loadTable(tableID)
	if err != nil {
		return false, err
	}
	if table.Status != models.TableStatusWalkInBlocked {
		return false, nil
	}

	expired := "expired"
	table.Status = models.TableStatusAvailable
	table.ReservationType = nil
	table.ReservationStatus = &expired
	table.BlockingStartTime = nil
	table.BlockingTimeout = nil
	table.CustomerName = nil
	table.GuestCount = nil
	if err := tsvc.saveTable(table); err != nil {
		return false, err
	}

	tsvc.Audit.Record("walk_in_timeout", "table", fmt.Sprint(table.ID), map[string]interface{}{
		"reason": "Guest did not arrive within 15 minutes",
	})
	return true, nil
}
