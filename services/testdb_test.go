package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/restaurant-flow/models"
	"github.com/yeremiapane/restaurant-flow/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// openTestDB opens a fresh in-memory database per test. The DSN is made
// unique so parallel tests never share state.
func openTestDB() *gorm.DB {
	utils.InitLogger()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", seq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.TableTimer{},
		&models.CleaningLog{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.DeductionLog{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		panic(err)
	}
	return db
}

// fakeClock is a settable clock for driving timer tests without
// sleeping.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// seedIngredient inserts an ingredient with its derived status.
func seedIngredient(db *gorm.DB, name string, stock, threshold float64) *models.Ingredient {
	ing := models.Ingredient{
		Name:         name,
		Unit:         "g",
		StockLevel:   stock,
		MinThreshold: threshold,
		Status:       models.StockStatusFor(stock, threshold),
	}
	db.Create(&ing)
	return &ing
}

// seedRecipe creates a menu item with a one-ingredient recipe.
func seedRecipe(db *gorm.DB, menuName string, ingredientID uint, amountPerUnit float64) *models.Menu {
	category := models.MenuCategory{Name: "Main " + menuName}
	db.Create(&category)

	menu := models.Menu{CategoryID: category.ID, Name: menuName, Price: 25000, Available: true}
	db.Create(&menu)

	recipe := models.Recipe{MenuID: menu.ID}
	db.Create(&recipe)
	db.Create(&models.RecipeIngredient{
		RecipeID:     recipe.ID,
		IngredientID: ingredientID,
		Amount:       amountPerUnit,
	})
	return &menu
}

// seedOrder creates an order in the given status with one line item.
func seedOrder(db *gorm.DB, status string, menuID uint, itemName string, quantity int) *models.Order {
	seq := atomic.AddInt64(&testDBSeq, 1)
	order := models.Order{
		OrderNumber:   models.FormatOrderNumber(seq),
		Status:        status,
		Type:          models.OrderTypeDineIn,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	db.Create(&order)
	db.Create(&models.OrderItem{
		OrderID:  order.ID,
		MenuID:   menuID,
		Name:     itemName,
		Quantity: quantity,
		Price:    25000,
	})
	db.Preload("Items").First(&order, order.ID)
	return &order
}
