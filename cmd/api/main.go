package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-restaurant-api/internal/handler"
	"go-restaurant-api/internal/middleware"
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/policy"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/service"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Ingredient{},
		&model.Recipe{},
		&model.IngredientDetail{},
		&model.Transaction{},
		&model.Menu{},
		&model.QueueCounter{},
		&model.UserType{},
		&model.User{},
	)

	// 3. Seed default user types and the bootstrap admin account
	seedUserTypesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	userTypeRepo := repository.NewUserTypeRepo(db)
	dashRepo := repository.NewDashboardRepo(db)

	ledger := service.NewStockLedger()

	ingredientService := service.NewIngredientService(ingredientRepo, recipeRepo, wsHub)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo)
	txService := service.NewTransactionService(txRepo, ledger, db, wsHub)
	userService := service.NewUserService(userRepo, userTypeRepo)
	authService := service.NewAuthService(userRepo)
	dashService := service.NewDashboardService(dashRepo)

	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	txHandler := handler.NewTransactionHandler(txService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Restaurant Back Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/me", userHandler.Me)

	// Dashboard Routes
	protected.Get("/dashboard/stats", middleware.RequireOperation(policy.OpDashboardView), dashHandler.Stats)
	protected.Get("/dashboard/daily-sales", middleware.RequireOperation(policy.OpDashboardView), dashHandler.DailySales)

	// Ingredient Routes
	protected.Get("/ingredients", ingredientHandler.GetAll)
	protected.Get("/ingredients/:id", ingredientHandler.GetOne)
	protected.Post("/ingredients", middleware.RequireOperation(policy.OpIngredientCreate), ingredientHandler.Create)
	protected.Put("/ingredients/:id", middleware.RequireOperation(policy.OpIngredientUpdate), ingredientHandler.Update)
	protected.Delete("/ingredients/:id", middleware.RequireOperation(policy.OpIngredientDelete), ingredientHandler.Delete)

	// Recipe Routes
	protected.Get("/recipes", recipeHandler.List)
	protected.Get("/recipes/:id", recipeHandler.GetOne)
	protected.Post("/recipes", middleware.RequireOperation(policy.OpRecipeCreate), recipeHandler.Create)
	protected.Put("/recipes/:id", middleware.RequireOperation(policy.OpRecipeUpdate), recipeHandler.Update)
	protected.Put("/recipes/:id/publish", middleware.RequireOperation(policy.OpRecipePublish), recipeHandler.TogglePublish)
	protected.Delete("/recipes/:id", middleware.RequireOperation(policy.OpRecipeDelete), recipeHandler.Delete)

	// Transaction Routes. Update stays open at the boundary; the service
	// branches on the actor's role.
	protected.Get("/transactions", txHandler.List)
	protected.Get("/transactions/:id", txHandler.GetOne)
	protected.Post("/transactions", middleware.RequireOperation(policy.OpTransactionCreate), txHandler.Create)
	protected.Put("/transactions/:id", middleware.RequireOperation(policy.OpTransactionUpdate), txHandler.Update)
	protected.Delete("/transactions/:id", middleware.RequireOperation(policy.OpTransactionDelete), txHandler.Delete)

	// User Management Routes
	protected.Get("/users", userHandler.GetAll)
	protected.Get("/users/:id", userHandler.GetOne)
	protected.Post("/users", middleware.RequireOperation(policy.OpUserCreate), userHandler.Create)
	protected.Put("/users/:id", middleware.RequireOperation(policy.OpUserUpdate), userHandler.Update)
	protected.Delete("/users/:id", middleware.RequireOperation(policy.OpUserDelete), userHandler.Delete)
	protected.Get("/user-types", userHandler.GetUserTypes)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedUserTypesAndAdmin creates the default user types and a bootstrap
// General Admin account if they don't exist yet.
func seedUserTypesAndAdmin(db *gorm.DB) {
	userTypeRepo := repository.NewUserTypeRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := userTypeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed user types: %v", err)
		return
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	if _, err := userRepo.FindActiveByUsername(adminUsername); err == nil {
		return
	}

	adminType, err := userTypeRepo.FindByName(model.TypeGeneralAdmin)
	if err != nil {
		log.Printf("Warning: General Admin user type missing: %v", err)
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin12345"
	}

	typeID := adminType.ID
	admin := &model.User{
		Username:   adminUsername,
		FirstName:  "General",
		LastName:   "Administrator",
		UserTypeID: &typeID,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("✅ Admin user created: %s (General Admin)", adminUsername)
	}
}
