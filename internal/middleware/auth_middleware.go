package middleware

import (
	"strings"

	"go-restaurant-api/internal/policy"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets user info in context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		tokenString := parts[1]

		// Validate token
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Check strict session against DB
		user, err := userRepo.FindActiveByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		// Set user info in context for downstream handlers. The resolved
		// identity travels through locals, never through package state.
		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("user_name", claims.FullName)
		c.Locals("user_type", user.TypeName())

		return c.Next()
	}
}

// RequireOperation checks the capability table before the operation body runs
func RequireOperation(op policy.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userType, ok := c.Locals("user_type").(string)
		if !ok || userType == "" {
			return c.Status(403).JSON(fiber.Map{"error": "No user type found"})
		}

		if !policy.Allows(op, userType) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: '" + string(op) + "' requires one of: " + policy.AllowedRoles(op),
			})
		}

		return c.Next()
	}
}
