package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
	"github.com/thusha-optical/optical-shop-api/models"
)

// SetupContactRoutes configures the contact form and face shape
// detection endpoints. Submissions are public, reading messages is
// admin only.
func SetupContactRoutes(app *fiber.App) {
	contact := app.Group("/contact")
	contact.Post("/submit", controllers.SubmitContactMessage)
	contact.Get("/messages", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.GetContactMessages)

	faceshape := app.Group("/faceshape")
	faceshape.Post("/detect", controllers.DetectFaceShape)
}
