package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/simple-ecommerce/storefront-service/internal/httpapi"
	"github.com/simple-ecommerce/storefront-service/internal/repository"
)

// NewApp builds the fiber application with middleware and all routes
// wired. Reads on the catalog are open; catalog writes and everything
// under /orders go through the auth middleware.
func NewApp(db *repository.DB, auth fiber.Handler, products *ProductHandler, orders *OrderHandler, users *UserHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Storefront Service v1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID,X-User-ID",
	}))
	app.Use(auth)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		if err := db.HealthCheck(); err != nil {
			return httpapi.InternalServerErrorResponse(c, "Database unreachable", nil)
		}
		return httpapi.SuccessResponse(c, "Storefront service is healthy", map[string]interface{}{
			"service": "storefront-service",
			"status":  "healthy",
		})
	})

	productRoutes := api.Group("/products")
	productRoutes.Get("/", products.ListProducts)
	productRoutes.Post("/", RequireAuth, products.CreateProduct)
	productRoutes.Get("/info", products.GetProductInfo)
	productRoutes.Get("/:id", products.GetProduct)
	productRoutes.Put("/:id", RequireAuth, products.UpdateProduct)
	productRoutes.Delete("/:id", RequireAuth, products.DeleteProduct)

	orderRoutes := api.Group("/orders", RequireAuth)
	orderRoutes.Get("/", orders.ListOrders)
	orderRoutes.Post("/", orders.CreateOrder)
	orderRoutes.Get("/mine", orders.MyOrders)
	orderRoutes.Get("/:id", orders.GetOrder)
	orderRoutes.Patch("/:id", orders.UpdateOrder)
	orderRoutes.Delete("/:id", orders.DeleteOrder)

	api.Get("/users", RequireAuth, users.ListUsers)

	app.Use("*", func(c *fiber.Ctx) error {
		return httpapi.NotFoundResponse(c, "Route not found")
	})

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
