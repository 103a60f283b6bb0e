package handlers

import (
	"errors"
	"log"

	"storeup/internal/models"
	"storeup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the storefront checkout submission. Checkout is
// open to guests; no credential is required.
type CheckoutHandler struct {
	checkout *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/stores/:storeId/checkout", h.HandleSubmit)
	router.Post("/stores/:storeId/checkout/validate", h.HandleValidate)
}

// HandleValidate dry-runs form validation so the view layer can highlight
// every invalid field before the shopper confirms.
func (h *CheckoutHandler) HandleValidate(c *fiber.Ctx) error {
	var form models.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing checkout form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	fieldErrs := h.checkout.ValidateCheckout(form)
	return c.JSON(fiber.Map{
		"valid":  len(fieldErrs) == 0,
		"errors": fieldErrs,
	})
}

// HandleSubmit runs the full submission. On success the cart is cleared and
// the order returned for the receipt; on failure the cart is untouched and
// the error is retryable by the shopper.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")

	var form models.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing checkout form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// A signed-in shopper's identity rides along; guests submit with none.
	customerID, _ := c.Locals("user_id").(string)

	order, err := h.checkout.Submit(c.Context(), storeID, session, customerID, form)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot check out an empty cart",
			})
		default:
			log.Printf("Order submission failed for store %s: %v", storeID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Order submission failed. Your cart has been kept; please try again.",
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}
