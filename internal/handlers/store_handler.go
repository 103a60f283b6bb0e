package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"storeup/internal/models"
	"storeup/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for storefront records.
type StoreHandler struct {
	service  *services.StoreService
	validate *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(service *services.StoreService) *StoreHandler {
	return &StoreHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterStorefrontRoutes registers the public store read routes.
func (h *StoreHandler) RegisterStorefrontRoutes(router fiber.Router) {
	router.Get("/stores", h.HandleGetStores)
	router.Get("/stores/:id", h.HandleGetStoreByID)
}

// RegisterDashboardRoutes registers the merchant store management routes.
func (h *StoreHandler) RegisterDashboardRoutes(router fiber.Router) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleGetMerchantStores)
	storeRoutes.Post("/", h.HandleCreateStore)
	storeRoutes.Put("/:id", h.HandleUpdateStore)
}

// HandleGetMerchantStores lists the stores owned by the signed-in merchant.
func (h *StoreHandler) HandleGetMerchantStores(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Merchant identity is required",
		})
	}
	stores, err := h.service.GetMerchantStores(userID)
	if err != nil {
		log.Printf("Error getting stores for merchant %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stores",
			"error":   err.Error(),
		})
	}
	return c.JSON(stores)
}

// HandleGetStores retrieves all storefronts.
func (h *StoreHandler) HandleGetStores(c *fiber.Ctx) error {
	stores, err := h.service.GetAllStores()
	if err != nil {
		log.Printf("Error getting all stores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stores",
			"error":   err.Error(),
		})
	}
	return c.JSON(stores)
}

// HandleGetStoreByID retrieves a storefront by ID, falling back to domain
// lookup so storefront URLs can use either.
func (h *StoreHandler) HandleGetStoreByID(c *fiber.Ctx) error {
	id := c.Params("id")
	store, err := h.service.GetStoreByID(id)
	if err != nil {
		store, err = h.service.GetStoreByDomain(id)
	}
	if err != nil {
		log.Printf("Error getting store %s: %v", id, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Store %s not found", id),
		})
	}
	return c.JSON(store)
}

// HandleCreateStore creates a new storefront.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		log.Printf("Error parsing store request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(store); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Merchant identity is required",
		})
	}

	if err := h.service.CreateStore(&store, userID); err != nil {
		log.Printf("Error creating store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create store",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleUpdateStore updates an existing storefront.
func (h *StoreHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		log.Printf("Error parsing store request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	store.ID = c.Params("id")

	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Merchant identity is required",
		})
	}

	if err := h.service.UpdateStore(&store, userID); err != nil {
		log.Printf("Error updating store %s: %v", store.ID, err)
		if errors.Is(err, services.ErrNotStoreOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "This store belongs to another merchant",
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Store with ID %s not found", store.ID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update store",
			"error":   err.Error(),
		})
	}
	return c.JSON(store)
}
