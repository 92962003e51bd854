package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-flow/controllers"
	"github.com/yeremiapane/restaurant-flow/middlewares"
	"github.com/yeremiapane/restaurant-flow/services"
	"gorm.io/gorm"
)

// SetupRouter wires every endpoint against one shared workflow stack so
// the HTTP layer and the timer loop see the same service instances.
func SetupRouter(db *gorm.DB, workflow *services.WorkflowService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before any route: gin snapshots the handler chain at
	// registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	workflowCtrl := controllers.NewWorkflowControllerWith(workflow)
	tableCtrl := controllers.NewTableController(db, workflow.Tables)
	orderCtrl := controllers.NewOrderController(db, workflow.Orders)
	inventoryCtrl := controllers.NewInventoryController(db)
	recipeCtrl := controllers.NewRecipeController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	cleanLogCtrl := controllers.NewCleaningLogController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	auditCtrl := controllers.NewAuditController(db)
	userCtrl := controllers.NewUserController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Real-time event stream for kitchen and floor displays
	r.GET("/kds/ws", controllers.KDSHandler)

	// ----------------------------------------------------------------
	//                LIFECYCLE STEPS (guest journey)
	// ----------------------------------------------------------------
	workflowGroup := r.Group("/workflow/tables/:table_id")
	{
		workflowGroup.POST("/walk-in-booking", workflowCtrl.WalkInBooking)
		workflowGroup.POST("/guest-arrived", workflowCtrl.GuestArrived)
		workflowGroup.POST("/waiter-assigned", workflowCtrl.WaiterAssigned)
		workflowGroup.POST("/order-created", workflowCtrl.OrderCreated)
		workflowGroup.POST("/order-accepted", workflowCtrl.OrderAccepted)
		workflowGroup.POST("/order-preparing", workflowCtrl.OrderPreparing)
		workflowGroup.POST("/order-ready", workflowCtrl.OrderReady)
		workflowGroup.POST("/bill-generated", workflowCtrl.BillGenerated)
		workflowGroup.POST("/payment-completed", workflowCtrl.PaymentCompleted)
	}

	// ----------------------------------------------------------------
	//                          TABLES
	// ----------------------------------------------------------------
	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.POST("", tableCtrl.CreateTable)
		tables.GET("/stats", tableCtrl.GetTableStats)
		tables.GET("/by-status", tableCtrl.FindTablesByStatus)
		tables.GET("/:table_id", tableCtrl.GetTableByID)
		tables.POST("/:table_id/assign-waiter", tableCtrl.AssignWaiter)
		tables.POST("/:table_id/remove-waiter", tableCtrl.RemoveWaiter)
		tables.POST("/:table_id/mark-clean", tableCtrl.MarkTableClean)
	}

	// ----------------------------------------------------------------
	//                          ORDERS
	// ----------------------------------------------------------------
	orders := r.Group("/orders")
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("/kitchen-queue", orderCtrl.GetKitchenQueue)
		orders.GET("/:order_id", orderCtrl.GetOrderByID)
		orders.PATCH("/:order_id/status", orderCtrl.UpdateOrderStatus)
		orders.POST("/:order_id/cancel", orderCtrl.CancelOrder)
	}

	// ----------------------------------------------------------------
	//                   INVENTORY AND RECIPES
	// ----------------------------------------------------------------
	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", inventoryCtrl.GetAllIngredients)
		ingredients.POST("", inventoryCtrl.CreateIngredient)
		ingredients.GET("/low-stock", inventoryCtrl.GetLowStock)
		ingredients.GET("/stats", inventoryCtrl.GetInventoryStats)
		ingredients.GET("/:ingredient_id", inventoryCtrl.GetIngredientByID)
		ingredients.PATCH("/:ingredient_id/stock", inventoryCtrl.UpdateStock)
	}

	recipes := r.Group("/recipes")
	{
		recipes.GET("", recipeCtrl.GetAllRecipes)
		recipes.POST("", recipeCtrl.UpsertRecipe)
		recipes.GET("/by-menu/:menu_id", recipeCtrl.GetRecipeByMenu)
		recipes.GET("/ingredients-for-item/:menu_name", recipeCtrl.IngredientsForItem)
		recipes.POST("/deduct-for-order", recipeCtrl.DeductForOrder)
	}

	// ----------------------------------------------------------------
	//                       MENU CATALOG
	// ----------------------------------------------------------------
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.POST("/categories", categoryCtrl.CreateCategory)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	r.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)

	r.GET("/menus", menuCtrl.GetAllMenus)
	r.POST("/menus", menuCtrl.CreateMenu)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)

	// ----------------------------------------------------------------
	//                  SUPPORTING RECORDS AND STAFF
	// ----------------------------------------------------------------
	r.GET("/cleaning-logs", cleanLogCtrl.GetAllCleaningLogs)
	r.GET("/cleaning-logs/:clean_id", cleanLogCtrl.GetCleaningLogByID)
	r.POST("/cleaning-logs/:clean_id/assign-cleaner", cleanLogCtrl.AssignCleaner)

	r.GET("/notifications", notificationCtrl.GetAllNotifications)
	r.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)

	r.GET("/audit-logs", auditCtrl.GetAuditLogs)

	r.GET("/users", userCtrl.GetAllUsers)
	r.POST("/users", userCtrl.CreateUser)
	r.GET("/users/:user_id", userCtrl.GetUserByID)
	r.PATCH("/users/:user_id", userCtrl.UpdateUser)

	// Destructive endpoints sit behind the strict limiter.
	destructive := r.Group("/")
	destructive.Use(middlewares.NewStrictRateLimiter())
	{
		destructive.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		destructive.DELETE("/ingredients/:ingredient_id", inventoryCtrl.DeleteIngredient)
		destructive.DELETE("/recipes/:recipe_id", recipeCtrl.DeleteRecipe)
		destructive.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
		destructive.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
		destructive.DELETE("/cleaning-logs/:clean_id", cleanLogCtrl.DeleteCleaningLog)
		destructive.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
		destructive.DELETE("/users/:user_id", userCtrl.DeleteUser)
	}

	return r
}
