package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/config"
	"github.com/example/heywrld/internal/storage"
	"github.com/example/heywrld/internal/utils"
)

const userContextKey = "currentUserID"

// AuthMiddleware validates JWT tokens and loads the authenticated user ID into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := bearerUserID(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware loads the user ID when a valid token is present
// but lets anonymous requests through. Guest checkout depends on this.
func OptionalAuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := bearerUserID(c, cfg.JWTSecret); err == nil {
			c.Locals(userContextKey, userID)
		}
		return c.Next()
	}
}

// RequireAdmin gates back-office routes. Must run after AuthMiddleware.
func RequireAdmin(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		user, err := store.GetUser(c.Context(), userID)
		if err != nil {
			return err
		}
		if user == nil || !user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (int, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return 0, false
	}

	if id, ok := value.(int); ok {
		return id, true
	}

	return 0, false
}

func bearerUserID(c *fiber.Ctx, secret string) (int, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	userID, err := utils.ParseToken(secret, parts[1])
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	return userID, nil
}
