package handlers

import (
	"errors"
	"log"

	"storeup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the storefront cart HTTP surface. Carts are keyed by
// the store in the path and the shopper's session header, so two storefronts
// on one device never share a cart.
type CartHandler struct {
	carts    *services.CartService
	products *services.ProductService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartService, products *services.ProductService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		products: products,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/stores/:storeId/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:productId", h.HandleSetQuantity)
	cartRoutes.Post("/items/:productId/increment", h.HandleIncrement)
	cartRoutes.Post("/items/:productId/decrement", h.HandleDecrement)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Post("/coupon", h.HandleApplyCoupon)
	cartRoutes.Delete("/coupon", h.HandleRemoveCoupon)
}

// sessionID extracts the shopper's session identity. The storefront client
// generates one per device and sends it with every cart request.
func sessionID(c *fiber.Ctx) string {
	return c.Get("X-Session-ID")
}

// requireSession writes a 400 and returns ok=false when the session header
// is missing; callers must stop and return nil.
func requireSession(c *fiber.Ctx) (string, bool) {
	session := sessionID(c)
	if session == "" {
		writeJSON(c, fiber.StatusBadRequest, fiber.Map{
			"message": "X-Session-ID header is required for cart operations",
		})
		return "", false
	}
	return session, true
}

// cartResponse renders the cart with its freshly derived price breakdown.
func (h *CartHandler) cartResponse(c *fiber.Ctx, storeID, session string) error {
	cart, breakdown := h.carts.Snapshot(storeID, session)
	return c.JSON(fiber.Map{
		"cart":      cart,
		"breakdown": breakdown,
	})
}

// HandleGetCart returns the session's cart and breakdown.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	return h.cartResponse(c, c.Params("storeId"), session)
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant"`
}

// HandleAddItem puts a product into the cart, snapshotting its catalog
// prices at add time.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	}
	if product.StoreID != storeID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product does not belong to this store",
		})
	}

	if _, err := h.carts.AddItem(storeID, session, product, req.Quantity, req.Variant); err != nil {
		// The in-memory cart applied the change; only the durable copy failed.
		log.Printf("Cart persisted write failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// SetQuantityRequest is the request body for setting a line item quantity.
type SetQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Variant  string `json:"variant"`
}

// HandleSetQuantity sets a line item's quantity; zero or below removes it.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")

	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set-quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.carts.SetQuantity(storeID, session, c.Params("productId"), req.Variant, req.Quantity); err != nil {
		log.Printf("Cart persisted write failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// HandleIncrement raises a line item's quantity by one.
func (h *CartHandler) HandleIncrement(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")
	if _, err := h.carts.IncrementQuantity(storeID, session, c.Params("productId"), c.Query("variant")); err != nil {
		log.Printf("Cart persisted write failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// HandleDecrement lowers a line item's quantity by one, removing it at zero.
func (h *CartHandler) HandleDecrement(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")
	if _, err := h.carts.DecrementQuantity(storeID, session, c.Params("productId"), c.Query("variant")); err != nil {
		log.Printf("Cart persisted write failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// HandleRemoveItem removes a line item unconditionally; removing an absent
// item succeeds with the unchanged cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")
	if _, err := h.carts.RemoveItem(storeID, session, c.Params("productId"), c.Query("variant")); err != nil {
		log.Printf("Cart persisted write failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// HandleClearCart empties the cart and removes its persisted record.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")
	if err := h.carts.Clear(storeID, session); err != nil {
		log.Printf("Cart persisted delete failed for store %s: %v", storeID, err)
	}
	return h.cartResponse(c, storeID, session)
}

// ApplyCouponRequest is the request body for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// HandleApplyCoupon activates a coupon on the cart. An unrecognized code is
// a user-visible message, not a server error.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")

	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	coupon, err := h.carts.ApplyCoupon(storeID, session, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCoupon) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Invalid coupon code",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not apply coupon",
			"error":   err.Error(),
		})
	}

	cart := h.carts.GetCart(storeID, session)
	return c.JSON(fiber.Map{
		"message":   "Coupon applied",
		"coupon":    coupon,
		"cart":      cart,
		"breakdown": h.carts.Breakdown(storeID, session),
	})
}

// HandleRemoveCoupon clears the active coupon.
func (h *CartHandler) HandleRemoveCoupon(c *fiber.Ctx) error {
	session, ok := requireSession(c)
	if !ok {
		return nil
	}
	storeID := c.Params("storeId")
	h.carts.RemoveCoupon(storeID, session)
	return h.cartResponse(c, storeID, session)
}
