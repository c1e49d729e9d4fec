package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thusha-optical/optical-shop-api/controllers"
	"github.com/thusha-optical/optical-shop-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/resend-otp", controllers.ResendOTP)
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/verify-token", middleware.Protected(), controllers.VerifyToken)
	auth.Post("/change-password", middleware.Protected(), controllers.ChangePassword)
	auth.Get("/profile", middleware.Protected(), controllers.GetProfile)
	auth.Patch("/profile", middleware.Protected(), controllers.UpdateProfile)
	auth.Post("/profile/picture", middleware.Protected(), controllers.UpdateProfilePicture)
}
