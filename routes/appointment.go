package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments", middleware.Protected())

	appointment.Get("/", controllers.GetAppointments)
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Patch("/:id", controllers.UpdateAppointment)
	appointment.Delete("/:id", controllers.CancelAppointment)
}
