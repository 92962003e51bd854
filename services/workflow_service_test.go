package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-flow/models"
)

func TestFullGuestLifecycle(t *testing.T) {
	clock := newFakeClock()
	ws, table := newTestWorkflow(clock)

	cheese := seedIngredient(ws.DB, "Mozzarella", 400, 50)
	menu := seedRecipe(ws.DB, "Margherita", cheese.ID, 80)
	order := seedOrder(ws.DB, models.OrderStatusPlaced, menu.ID, menu.Name, 2)

	step, err := ws.WalkInBooking(table.ID, 3, "Budi")
	require.NoError(t, err)
	assert.True(t, step.Success)
	assert.Equal(t, models.TableStatusWalkInBlocked, step.Status)
	assert.Equal(t, "wait_for_guest_arrival", step.NextStep)
	assert.NotNil(t, step.Extra["blockingTimeout"])

	step, err = ws.GuestArrived(table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusOccupied, step.Status)
	assert.Equal(t, "assign_waiter", step.NextStep)

	step, err = ws.WaiterAssigned(table.ID, 7, "Wati")
	require.NoError(t, err)
	assert.Equal(t, "take_order", step.NextStep)
	assert.Contains(t, step.Message, "Wati")

	step, err = ws.OrderCreated(table.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "order_acceptance", step.NextStep)

	step, err = ws.OrderAccepted(table.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusOrderAccepted, step.Status)
	assert.Equal(t, "kitchen_prepares", step.NextStep)

	step, err = ws.OrderPreparing(table.ID, order.ID, 3, 20)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusEating, step.Status)
	assert.Equal(t, "order_ready", step.NextStep)
	assert.NotNil(t, step.Extra["estimatedReadyTime"])

	// The preparing step drove the stock deduction (2 x 80).
	var ing models.Ingredient
	require.NoError(t, ws.DB.First(&ing, cheese.ID).Error)
	assert.Equal(t, 240.0, ing.StockLevel)

	// The paired order rode along.
	var pairedOrder models.Order
	require.NoError(t, ws.DB.First(&pairedOrder, order.ID).Error)
	assert.Equal(t, models.OrderStatusPreparing, pairedOrder.Status)
	require.NotNil(t, pairedOrder.ChefID)
	assert.Equal(t, uint(3), *pairedOrder.ChefID)

	step, err = ws.OrderReady(table.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusServed, step.Status)
	assert.Equal(t, "bill_generation", step.NextStep)

	step, err = ws.BillGenerated(table.ID, "BILL-7", 100000)
	require.NoError(t, err)
	assert.Equal(t, "payment_processing", step.NextStep)
	assert.Contains(t, step.Message, "Rp 100.000")

	step, err = ws.PaymentCompleted(table.ID, "BILL-7", "PAY-7", 100000, "qris", "")
	require.NoError(t, err)
	assert.Equal(t, models.TableStatusCleaning, step.Status)
	assert.Equal(t, "cleaning", step.NextStep)
	assert.NotNil(t, step.Extra["cleaningEndTime"])
}

func TestStepErrorsCarryNoPartialState(t *testing.T) {
	ws, table := newTestWorkflow(newFakeClock())

	// Ordering against a table that has no seated guests.
	_, err := ws.OrderCreated(table.ID, 44)
	var precondition *PreconditionError
	require.ErrorAs(t, err, &precondition)

	var reloaded models.Table
	require.NoError(t, ws.DB.First(&reloaded, table.ID).Error)
	assert.Nil(t, reloaded.CurrentOrderID)
	assert.Equal(t, models.TableStatusAvailable, reloaded.Status)
}

func TestOrderSideFailureDoesNotBlockTableStep(t *testing.T) {
	ws, table := newTestWorkflow(newFakeClock())
	require.NoError(t, ws.DB.Model(table).Update("status", models.TableStatusOccupied).Error)

	_, err := ws.Tables.OrderCreated(table.ID, 555)
	require.NoError(t, err)

	// Order 555 does not exist; the table step still succeeds and the
	// order-side failure is only logged.
	step, err := ws.OrderAccepted(table.ID, 555)
	require.NoError(t, err)
	assert.True(t, step.Success)
	assert.Equal(t, models.TableStatusOrderAccepted, step.Status)
}

