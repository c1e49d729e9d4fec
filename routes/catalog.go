package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
	"github.com/thusha-optical/optical-shop-api/models"
)

// SetupCatalogRoutes configures product, accessory, category and frame
// type routes. Reads are public; mutations need the admin role, stock
// updates additionally allow manufacturers.
func SetupCatalogRoutes(app *fiber.App) {
	admin := middleware.RequireRole(models.RoleAdmin)
	stockRoles := middleware.RequireRole(models.RoleAdmin, models.RoleManufacturer)

	product := app.Group("/products")
	product.Get("/", controllers.GetProducts)
	product.Get("/:id", controllers.GetProduct)
	product.Post("/", middleware.Protected(), admin, controllers.CreateProduct)
	product.Patch("/:id", middleware.Protected(), admin, controllers.UpdateProduct)
	product.Patch("/:id/update-stock", middleware.Protected(), stockRoles, controllers.UpdateProductStock)
	product.Delete("/:id", middleware.Protected(), admin, controllers.DeleteProduct)

	accessory := app.Group("/accessories")
	accessory.Get("/", controllers.GetAccessories)
	accessory.Get("/:id", controllers.GetAccessory)
	accessory.Post("/", middleware.Protected(), admin, controllers.CreateAccessory)
	accessory.Patch("/:id", middleware.Protected(), admin, controllers.UpdateAccessory)
	accessory.Patch("/:id/update-stock", middleware.Protected(), stockRoles, controllers.UpdateAccessoryStock)
	accessory.Delete("/:id", middleware.Protected(), admin, controllers.DeleteAccessory)

	category := app.Group("/categories")
	category.Get("/", controllers.GetCategories)
	category.Post("/", middleware.Protected(), admin, controllers.CreateCategory)
	category.Patch("/:id", middleware.Protected(), admin, controllers.UpdateCategory)
	category.Delete("/:id", middleware.Protected(), admin, controllers.DeleteCategory)

	frameType := app.Group("/frame-types")
	frameType.Get("/", controllers.GetFrameTypes)
	frameType.Post("/", middleware.Protected(), admin, controllers.CreateFrameType)
	frameType.Patch("/:id", middleware.Protected(), admin, controllers.UpdateFrameType)
	frameType.Delete("/:id", middleware.Protected(), admin, controllers.DeleteFrameType)
}
