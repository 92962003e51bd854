package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-flow/models"
)

func TestStockStatusBoundaries(t *testing.T) {
	cases := []struct {
		stock     float64
		threshold float64
		want      string
	}{
		{0, 20, models.StockStatusOut},
		{-1, 20, models.StockStatusOut},
		{9, 20, models.StockStatusCritical},
		{10, 20, models.StockStatusCritical},
		{10.5, 20, models.StockStatusLow},
		{20, 20, models.StockStatusLow},
		{20.01, 20, models.StockStatusHealthy},
		{100, 20, models.StockStatusHealthy},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.StockStatusFor(tc.stock, tc.threshold),
			"stock=%v threshold=%v", tc.stock, tc.threshold)
	}
}

func TestDeductStockRecomputesStatus(t *testing.T) {
	db := openTestDB()
	is := NewInventoryService(db)

	ing := seedIngredient(db, "Butter", 30, 20)
	require.Equal(t, models.StockStatusHealthy, ing.Status)

	updated, err := is.DeductStock(nil, ing.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.StockLevel)
	assert.Equal(t, models.StockStatusLow, updated.Status)
	assert.NotNil(t, updated.LastDeduction)
}

func TestDeductStockUnknownIngredient(t *testing.T) {
	db := openTestDB()
	is := NewInventoryService(db)

	_, err := is.DeductStock(nil, 9999, 5)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRestockIngredientRaisesStatus(t *testing.T) {
	db := openTestDB()
	is := NewInventoryService(db)

	ing := seedIngredient(db, "Sugar", 0, 10)
	require.Equal(t, models.StockStatusOut, ing.Status)

	updated, err := is.RestockIngredient(ing.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.StockLevel)
	assert.Equal(t, models.StockStatusHealthy, updated.Status)
}

func TestRestockRejectsNegativeQuantity(t *testing.T) {
	db := openTestDB()
	is := NewInventoryService(db)

	ing := seedIngredient(db, "Salt", 10, 5)
	_, err := is.RestockIngredient(ing.ID, -3)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLowStockIngredients(t *testing.T) {
	db := openTestDB()
	is := NewInventoryService(db)

	seedIngredient(db, "Plenty", 100, 10)
	seedIngredient(db, "Short", 5, 10)
	seedIngredient(db, "Gone", 0, 10)

	low, err := is.LowStockIngredients()
	require.NoError(t, err)
	require.Len(t, low, 2)
	// Ordered by stock level ascending.
	assert.Equal(t, "Gone", low[0].Name)
	assert.Equal(t, "Short", low[1].Name)
}
