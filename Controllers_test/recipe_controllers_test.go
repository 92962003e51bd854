package Controllers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-flow/models"
)

func TestUpsertRecipeCreatesAndReplaces(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	menu := seedMenu(t, db, "Nasi Goreng", 30000)
	rice := seedIngredient(t, db, "Rice", 500, 20)
	oil := seedIngredient(t, db, "Oil", 300, 20)

	w := doJSON(t, r, "POST", "/recipes", map[string]interface{}{
		"menuId": menu.ID,
		"ingredients": []map[string]interface{}{
			{"ingredientId": rice.ID, "amount": 150},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	ingredients := data["ingredients"].([]interface{})
	require.Len(t, ingredients, 1)

	// A second upsert replaces the ingredient list wholesale.
	w = doJSON(t, r, "POST", "/recipes", map[string]interface{}{
		"menuId": menu.ID,
		"ingredients": []map[string]interface{}{
			{"ingredientId": rice.ID, "amount": 150},
			{"ingredientId": oil.ID, "amount": 10},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data = dataOf(t, w)
	ingredients = data["ingredients"].([]interface{})
	require.Len(t, ingredients, 2)

	var recipeCount int64
	db.Model(&models.Recipe{}).Count(&recipeCount)
	assert.Equal(t, int64(1), recipeCount)
}

func TestGetRecipeByMenuWithoutRecipe(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	menu := seedMenu(t, db, "Es Teh", 5000)

	w := doJSON(t, r, "GET", fmt.Sprintf("/recipes/by-menu/%d", menu.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	ingredients, ok := data["ingredients"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, ingredients)
}

func TestDeductForOrderEndpointIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	menu := seedMenu(t, db, "Rendang", 45000)
	beef := seedIngredient(t, db, "Beef", 1000, 100)

	w := doJSON(t, r, "POST", "/recipes", map[string]interface{}{
		"menuId": menu.ID,
		"ingredients": []map[string]interface{}{
			{"ingredientId": beef.ID, "amount": 200},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := map[string]interface{}{
		"orderId": 501,
		"items": []map[string]interface{}{
			{"menuItemId": menu.ID, "name": "Rendang", "quantity": 2},
		},
	}

	w = doJSON(t, r, "POST", "/recipes/deduct-for-order", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	response := decodeBody(t, w)
	assert.Equal(t, "Inventory deducted", response["message"])
	data := dataOf(t, w)
	assert.Equal(t, false, data["alreadyProcessed"])

	var ingredient models.Ingredient
	require.NoError(t, db.First(&ingredient, beef.ID).Error)
	assert.Equal(t, float64(600), ingredient.StockLevel)

	w = doJSON(t, r, "POST", "/recipes/deduct-for-order", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	response = decodeBody(t, w)
	assert.Equal(t, "Already processed", response["message"])

	require.NoError(t, db.First(&ingredient, beef.ID).Error)
	assert.Equal(t, float64(600), ingredient.StockLevel)
}

func TestIngredientsForItemEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	menu := seedMenu(t, db, "Soto Ayam", 20000)
	chicken := seedIngredient(t, db, "Chicken", 50, 100)

	w := doJSON(t, r, "POST", "/recipes", map[string]interface{}{
		"menuId": menu.ID,
		"ingredients": []map[string]interface{}{
			{"ingredientId": chicken.ID, "amount": 120},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "GET", "/recipes/ingredients-for-item/"+url.PathEscape("Soto Ayam"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assert.Equal(t, true, data["hasRecipe"])
	assert.Equal(t, false, data["canPrepare"])

	w = doJSON(t, r, "GET", "/recipes/ingredients-for-item/"+url.PathEscape("Unknown Dish"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = dataOf(t, w)
	assert.Equal(t, false, data["hasRecipe"])
}
