package middleware

import (
	"strings"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/auth"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const IdentityKey = "identity"

// NewAuthMiddleware validates the bearer token and stores the caller's
// identity in locals. Every /api route behind it can assume an authenticated
// customer.
func NewAuthMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "missing authorization header",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid authorization header",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(
				"token validation failed",
				zap.Error(err),
			)

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid or expired token",
			})
		}

		c.Locals(IdentityKey, domain.Identity{
			CustomerID: claims.CustomerID,
			Email:      claims.Email,
			Role:       claims.Role,
		})

		return c.Next()
	}
}

// IdentityFromCtx reads the identity the auth middleware stored. The bool is
// false only if the middleware did not run on this route.
func IdentityFromCtx(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(domain.Identity)
	return identity, ok
}
