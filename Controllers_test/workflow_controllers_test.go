package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-flow/models"
)

func TestWalkInBookingEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "A1", Capacity: 4, Status: models.TableStatusAvailable}
	require.NoError(t, db.Create(&table).Error)

	url := fmt.Sprintf("/workflow/tables/%d/walk-in-booking", table.ID)
	w := doJSON(t, r, "POST", url, map[string]interface{}{
		"guestCount":   4,
		"customerName": "Budi",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, models.TableStatusWalkInBlocked, data["status"])
	assert.Equal(t, "wait_for_guest_arrival", data["nextStep"])
}

func TestWalkInBookingEndpointRejectsOverCapacity(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "A2", Capacity: 4, Status: models.TableStatusAvailable}
	require.NoError(t, db.Create(&table).Error)

	url := fmt.Sprintf("/workflow/tables/%d/walk-in-booking", table.ID)
	w := doJSON(t, r, "POST", url, map[string]interface{}{
		"guestCount":   5,
		"customerName": "Budi",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Contains(t, response["message"], "exceeds table capacity")
}

func TestWalkInBookingEndpointConflictWhenBlocked(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "A3", Capacity: 4, Status: models.TableStatusOccupied}
	require.NoError(t, db.Create(&table).Error)

	url := fmt.Sprintf("/workflow/tables/%d/walk-in-booking", table.ID)
	w := doJSON(t, r, "POST", url, map[string]interface{}{"guestCount": 2})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGuestArrivedEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "B1", Capacity: 4, Status: models.TableStatusReserved}
	require.NoError(t, db.Create(&table).Error)

	url := fmt.Sprintf("/workflow/tables/%d/guest-arrived", table.ID)
	w := doJSON(t, r, "POST", url, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, models.TableStatusOccupied, data["status"])
	assert.Equal(t, "assign_waiter", data["nextStep"])
}

func TestWorkflowUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := doJSON(t, r, "POST", "/workflow/tables/999/guest-arrived", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCompletedEndpointStartsCleaning(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "C1", Capacity: 4, Status: models.TableStatusServed}
	require.NoError(t, db.Create(&table).Error)

	before := time.Now().UTC()
	url := fmt.Sprintf("/workflow/tables/%d/payment-completed", table.ID)
	w := doJSON(t, r, "POST", url, map[string]interface{}{
		"billId":         "BILL-1",
		"paymentId":      "PAY-1",
		"amount":         150000,
		"paymentMethod":  "qris",
		"originalStatus": "reserved",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, models.TableStatusCleaning, data["status"])
	assert.Equal(t, "cleaning", data["nextStep"])

	extra := data["extra"].(map[string]interface{})
	assert.Equal(t, "reserved", extra["nextStatus"])

	endRaw, ok := extra["cleaningEndTime"].(string)
	require.True(t, ok)
	cleaningEnd, err := time.Parse(time.RFC3339, endRaw)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(5*time.Minute), cleaningEnd, 5*time.Second)
}

func TestFullLifecycleOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	table := models.Table{TableNumber: "D1", Capacity: 6, Status: models.TableStatusAvailable}
	require.NoError(t, db.Create(&table).Error)

	base := fmt.Sprintf("/workflow/tables/%d", table.ID)

	w := doJSON(t, r, "POST", base+"/walk-in-booking", map[string]interface{}{"guestCount": 2, "customerName": "Sari"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/guest-arrived", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/waiter-assigned", map[string]interface{}{"waiterId": 7, "waiterName": "Wati"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Create the order through the orders API, then link it.
	w = doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"tableId": table.ID,
		"items":   []map[string]interface{}{{"name": "Nasi Goreng", "quantity": 2, "price": 30000}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderData := dataOf(t, w)
	orderID := uint(orderData["id"].(float64))

	w = doJSON(t, r, "POST", base+"/order-created", map[string]interface{}{"orderId": orderID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/order-accepted", map[string]interface{}{"orderId": orderID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/order-preparing", map[string]interface{}{
		"orderId": orderID, "chefId": 3, "estimatedTimeMinutes": 15,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/order-ready", map[string]interface{}{"orderId": orderID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/bill-generated", map[string]interface{}{"billId": "BILL-D1", "totalAmount": 60000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", base+"/payment-completed", map[string]interface{}{
		"billId": "BILL-D1", "paymentId": "PAY-D1", "amount": 60000, "paymentMethod": "cash",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The paired order rode the whole flow.
	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusReady, order.Status)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, models.TableStatusCleaning, reloaded.Status)
}
