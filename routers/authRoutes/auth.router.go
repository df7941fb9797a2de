package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up account and credential routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/logout", authController.Logout)
	authGroup.Post("/token/refresh", authController.RefreshToken)

	authGroup.Get("/profile", middleware.JWTMiddleware, authController.Profile)
	authGroup.Post("/profile/update", middleware.JWTMiddleware, authValidator.UpdateProfile(), authController.UpdateProfile)
	authGroup.Post("/profile/picture", middleware.JWTMiddleware, authController.UploadProfilePicture)

	authGroup.Post("/password/forgot", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Post("/password/reset", authValidator.ResetPassword(), authController.ResetPassword)
	authGroup.Post("/password/change", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
}
