package handler

import (
	"go-restaurant-api/internal/service"
	"go-restaurant-api/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the authenticated identity out of the request context
// (set by the RequireAuth middleware).
func getUserID(c *fiber.Ctx) uuid.UUID {
	userID := c.Locals("user_id")
	if userID == nil {
		return uuid.Nil
	}
	return userID.(uuid.UUID)
}

func getUserType(c *fiber.Ctx) string {
	userType := c.Locals("user_type")
	if userType == nil {
		return ""
	}
	return userType.(string)
}

func getActor(c *fiber.Ctx) service.Actor {
	return service.Actor{UserID: getUserID(c), UserType: getUserType(c)}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail renders a service error with the status its kind maps to.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.StatusOf(err)).JSON(fiber.Map{"error": err.Error()})
}
