package main

import (
	"log"
	"strings"

	"pos-backend/internal/auth"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/inventory"
	"pos-backend/internal/kot"
	"pos-backend/internal/menu"
	"pos-backend/internal/models"
	"pos-backend/internal/ordertable"
	"pos-backend/internal/waste"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/pin-login", auth.PinLoginHandler(cfg))

	// KOT routes are left open at the route level; the kitchen display
	// polls them without a session.
	api.Post("/kot/create", kot.CreateKOTHandler())
	api.Put("/kot/accept/:kotId", kot.AdvanceKOTHandler(models.KOTStatusAccepted, "KOT Accepted"))
	api.Put("/kot/preparing/:kotId", kot.AdvanceKOTHandler(models.KOTStatusPreparing, "KOT Preparing Started"))
	api.Put("/kot/ready/:kotId", kot.AdvanceKOTHandler(models.KOTStatusReady, "KOT is Ready"))
	api.Put("/kot/served/:kotId", kot.AdvanceKOTHandler(models.KOTStatusServed, "KOT Served"))
	api.Get("/kot/all", kot.ListKOTsHandler())

	// Inventory
	api.Get("/inventory", inventory.ListProductsHandler())
	api.Get("/inventory/:id", inventory.GetProductHandler())
	api.Post("/inventory", inventory.CreateProductHandler())
	api.Put("/inventory/:id", inventory.UpdateProductHandler())
	api.Delete("/inventory/:id", inventory.DeleteProductHandler())

	// Menu
	api.Get("/menu/:category", menu.ListByCategoryHandler())
	api.Post("/menu", menu.CreateMenuItemHandler())
	api.Put("/menu/:id", menu.UpdateMenuItemHandler())
	api.Delete("/menu/:id", menu.DeleteMenuItemHandler())

	// Waste
	api.Post("/waste", waste.CreateWasteHandler())
	api.Get("/waste", waste.ListWasteHandler())
	api.Put("/waste/:id", waste.UpdateWasteHandler())
	api.Delete("/waste/:id", waste.DeleteWasteHandler())

	// Everything below requires a session
	protected := api.Group("")
	protected.Use(auth.Protect(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/profile", auth.ProfileHandler())
	protected.Get("/auth/staff",
		auth.RequireRole(models.RoleAdmin, models.RoleManager),
		auth.ListStaffHandler())

	// Tables & orders
	orderTable := protected.Group("/order-table")

	orderTable.Post("/tables",
		auth.RequireRole(models.RoleAdmin, models.RoleManager),
		ordertable.CreateTableHandler())
	orderTable.Get("/tables", ordertable.ListTablesHandler())
	orderTable.Put("/tables/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleManager),
		ordertable.UpdateTableHandler())
	orderTable.Delete("/tables/:id",
		auth.RequireRole(models.RoleAdmin, models.RoleManager),
		ordertable.DeleteTableHandler())

	orderTable.Post("/orders",
		auth.RequireRole(models.RoleStaff, models.RoleManager, models.RoleAdmin),
		ordertable.CreateOrderHandler())
	orderTable.Get("/orders", ordertable.ListOrdersHandler())
	orderTable.Put("/orders/:id",
		auth.RequireRole(models.RoleStaff, models.RoleManager, models.RoleAdmin),
		ordertable.UpdateOrderHandler())
	orderTable.Delete("/orders/:id",
		auth.RequireRole(models.RoleManager, models.RoleAdmin),
		ordertable.DeleteOrderHandler())

	orderTable.Get("/billing/:tableId", ordertable.TableBillingHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
