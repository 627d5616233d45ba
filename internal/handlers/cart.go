package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/storage"
)

const cartSessionCookie = "cart_session"

// CartHandler exposes the session cart over HTTP. Sessions are identified
// by a cookie (or the X-Cart-Session header for API clients); carts
// survive restarts through the cart store.
type CartHandler struct {
	manager *cart.Manager
	store   storage.Storage
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(manager *cart.Manager, store storage.Storage) *CartHandler {
	return &CartHandler{manager: manager, store: store}
}

// resolveCartSession returns the caller's cart session id, minting one
// (and setting the cookie) when none is presented yet. The checkout
// handler shares the same identity so it operates on the same cart.
func resolveCartSession(c *fiber.Ctx) string {
	sessionID := c.Get("X-Cart-Session")
	if sessionID == "" {
		sessionID = c.Cookies(cartSessionCookie)
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     cartSessionCookie,
			Value:    sessionID,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return sessionID
}

func (h *CartHandler) sessionCart(c *fiber.Ctx) *cart.Engine {
	return h.manager.Cart(c.Context(), resolveCartSession(c))
}

// GetCart returns the current cart with its derived total and the
// shipping fee preview, both computed by the same rules the checkout
// charges with.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	snapshot := h.sessionCart(c).Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"cart":         snapshot,
			"shipping_fee": cart.ShippingFee(snapshot.Total),
			"order_total":  cart.OrderTotal(snapshot.Total),
		},
	})
}

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity"`
}

// AddItem puts a product into the cart, snapshotting the product at its
// current catalog state. Re-adding a product increments its quantity.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	product, err := h.store.GetProduct(c.Context(), req.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	engine := h.sessionCart(c)
	engine.AddItem(c.Context(), *product, req.Quantity)
	return c.JSON(fiber.Map{"success": true, "data": engine.Snapshot()})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity sets a line's quantity exactly. Non-positive quantities
// leave the line unchanged; use RemoveItem to drop a line.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	engine := h.sessionCart(c)
	engine.UpdateQuantity(c.Context(), productID, req.Quantity)
	return c.JSON(fiber.Map{"success": true, "data": engine.Snapshot()})
}

// RemoveItem drops a line from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	engine := h.sessionCart(c)
	engine.RemoveItem(c.Context(), productID)
	return c.JSON(fiber.Map{"success": true, "data": engine.Snapshot()})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	engine := h.sessionCart(c)
	engine.Clear(c.Context())
	return c.JSON(fiber.Map{"success": true, "data": engine.Snapshot()})
}
