package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
	"github.com/thusha-optical/optical-shop-api/models"
)

// SetupDoctorRoutes configures the doctor directory routes
func SetupDoctorRoutes(app *fiber.App) {
	doctors := app.Group("/doctors", middleware.Protected())

	doctors.Get("/", controllers.GetDoctors)
	doctors.Get("/available", controllers.GetAvailableDoctors)
	doctors.Get("/profile", middleware.RequireRole(models.RoleDoctor), controllers.GetDoctorProfile)
	doctors.Patch("/profile", middleware.RequireRole(models.RoleDoctor), controllers.UpdateDoctorProfile)
	doctors.Get("/:id/slots", controllers.GetAvailableSlots)
}
