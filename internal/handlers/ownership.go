package handlers

import (
	"errors"
	"fmt"
	"log"

	"storeup/internal/models"
	"storeup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// requireStoreOwner confirms the signed-in merchant owns the store before a
// dashboard operation touches it. When the check fails the response has
// already been written and ok is false; callers must stop and return nil.
func requireStoreOwner(c *fiber.Ctx, stores *services.StoreService, storeID string) (*models.Store, bool) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		writeJSON(c, fiber.StatusUnauthorized, fiber.Map{
			"message": "Merchant identity is required",
		})
		return nil, false
	}

	store, err := stores.RequireOwner(storeID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotStoreOwner) {
			writeJSON(c, fiber.StatusForbidden, fiber.Map{
				"message": "This store belongs to another merchant",
			})
			return nil, false
		}
		writeJSON(c, fiber.StatusNotFound, fiber.Map{
			"message": fmt.Sprintf("Store %s not found", storeID),
		})
		return nil, false
	}
	return store, true
}

func writeJSON(c *fiber.Ctx, status int, body fiber.Map) {
	if err := c.Status(status).JSON(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
