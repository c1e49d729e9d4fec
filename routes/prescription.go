package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
	"github.com/thusha-optical/optical-shop-api/models"
)

// SetupPrescriptionRoutes configures all prescription related routes
func SetupPrescriptionRoutes(app *fiber.App) {
	prescription := app.Group("/prescriptions", middleware.Protected())

	prescription.Get("/", controllers.GetPrescriptions)
	prescription.Post("/", middleware.RequireRole(models.RoleDoctor), controllers.CreatePrescription)
	prescription.Get("/:id", controllers.GetPrescription)
	prescription.Patch("/:id", middleware.RequireRole(models.RoleDoctor), controllers.UpdatePrescription)
}
