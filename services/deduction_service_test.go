package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-flow/models"
)

func TestDeductForOrderAppliesRecipe(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	cheese := seedIngredient(db, "Cheese", 500, 100)
	menu := seedRecipe(db, "Pizza Margherita", cheese.ID, 50)
	order := seedOrder(db, models.OrderStatusPlaced, menu.ID, menu.Name, 2)

	result, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.AlreadyProcessed)
	require.Len(t, result.Deducted, 1)
	assert.Equal(t, 100.0, result.Deducted[0].Amount)
	assert.Equal(t, 400.0, result.Deducted[0].NewStock)
	assert.Empty(t, result.Errors)

	var ing models.Ingredient
	require.NoError(t, db.First(&ing, cheese.ID).Error)
	assert.Equal(t, 400.0, ing.StockLevel)
	assert.Equal(t, models.StockStatusHealthy, ing.Status)
	assert.NotNil(t, ing.LastDeduction)

	var log models.DeductionLog
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&log).Error)
	assert.NotEmpty(t, log.Deducted)
}

func TestDeductForOrderIsIdempotent(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	flour := seedIngredient(db, "Flour", 1000, 200)
	menu := seedRecipe(db, "Garlic Bread", flour.ID, 100)
	order := seedOrder(db, models.OrderStatusPlaced, menu.ID, menu.Name, 1)

	first, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	assert.False(t, first.AlreadyProcessed)

	second, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Empty(t, second.Deducted)

	// Stock was touched exactly once.
	var ing models.Ingredient
	require.NoError(t, db.First(&ing, flour.ID).Error)
	assert.Equal(t, 900.0, ing.StockLevel)

	var count int64
	db.Model(&models.DeductionLog{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeductForOrderConcurrentCallersDeductOnce(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	flour := seedIngredient(db, "Flour", 1000, 200)
	menu := seedRecipe(db, "Focaccia", flour.ID, 100)
	order := seedOrder(db, models.OrderStatusPlaced, menu.ID, menu.Name, 1)

	// Two kitchen "start preparing" calls racing on the same order. The
	// claim insert decides the winner; the loser must not touch stock.
	results := make(chan *DeductionResult, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := ds.DeductForOrder(order.ID, order.Items)
			if assert.NoError(t, err) {
				results <- result
			}
		}()
	}
	wg.Wait()
	close(results)

	applied := 0
	for result := range results {
		if !result.AlreadyProcessed {
			applied++
		}
	}
	assert.Equal(t, 1, applied)

	var ing models.Ingredient
	require.NoError(t, db.First(&ing, flour.ID).Error)
	assert.Equal(t, 900.0, ing.StockLevel)

	var count int64
	db.Model(&models.DeductionLog{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeductForOrderClampsStockAtZero(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	// 10 on hand with threshold 20 is already at the critical boundary.
	rice := seedIngredient(db, "Rice", 10, 20)
	assert.Equal(t, models.StockStatusCritical, rice.Status)

	menu := seedRecipe(db, "Nasi Goreng", rice.ID, 12)
	order := seedOrder(db, models.OrderStatusPlaced, menu.ID, menu.Name, 1)

	result, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	require.Len(t, result.Deducted, 1)
	assert.Equal(t, 0.0, result.Deducted[0].NewStock)
	assert.Equal(t, models.StockStatusOut, result.Deducted[0].Status)

	var ing models.Ingredient
	require.NoError(t, db.First(&ing, rice.ID).Error)
	assert.Equal(t, 0.0, ing.StockLevel)
	assert.Equal(t, models.StockStatusOut, ing.Status)
}

func TestDeductForOrderUnmappedItemIsNonFatal(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	tomato := seedIngredient(db, "Tomato", 50, 10)
	menu := seedRecipe(db, "Soup", tomato.ID, 5)

	order := seedOrder(db, models.OrderStatusPlaced, menu.ID, menu.Name, 1)
	db.Create(&models.OrderItem{
		OrderID:  order.ID,
		Name:     "Extra Napkins",
		Quantity: 1,
	})
	require.NoError(t, db.Preload("Items").First(order, order.ID).Error)

	result, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	require.Len(t, result.Deducted, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "No recipe found for 'Extra Napkins'")

	var ing models.Ingredient
	require.NoError(t, db.First(&ing, tomato.ID).Error)
	assert.Equal(t, 45.0, ing.StockLevel)
}

func TestDeductForOrderResolvesByName(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	beef := seedIngredient(db, "Beef", 300, 50)
	seedRecipe(db, "Rendang", beef.ID, 150)

	// An item referencing the dish by name only (no catalog id).
	order := seedOrder(db, models.OrderStatusPlaced, 0, "rendang", 1)

	result, err := ds.DeductForOrder(order.ID, order.Items)
	require.NoError(t, err)
	require.Len(t, result.Deducted, 1)
	assert.Equal(t, 150.0, result.Deducted[0].Amount)
}

func TestDeductForOrderRejectsEmptyInput(t *testing.T) {
	db := openTestDB()
	ds := NewDeductionService(db)

	_, err := ds.DeductForOrder(0, nil)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}
