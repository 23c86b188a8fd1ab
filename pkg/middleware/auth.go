package middleware

import (
	"strings"

	"quantumfinance/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsUsername is the fiber.Ctx locals key holding the operator name.
const LocalsUsername = "username"

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		// refresh tokens only work on /auth/refresh
		if claims.TokenType != auth.TokenTypeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		c.Locals(LocalsUsername, claims.Username)

		return c.Next()
	}
}
