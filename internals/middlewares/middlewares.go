package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "competition_portal_backend/internals/middlewares/logger"
)

// SetupMiddlewares registers the app-wide middleware stack in order:
// recovery first, then CORS, request logging and the global rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
