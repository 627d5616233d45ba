package handlers

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/checkout"
	"github.com/example/heywrld/internal/middleware"
	"github.com/example/heywrld/internal/storage"
)

// CheckoutHandler drives the two-step checkout over HTTP. One flow per
// cart session; the flow is discarded once the order is confirmed so the
// next purchase starts fresh.
type CheckoutHandler struct {
	mu      sync.Mutex
	flows   map[string]*checkout.Flow
	store   storage.Storage
	gateway checkout.PaymentGateway
	manager *cart.Manager
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(store storage.Storage, gateway checkout.PaymentGateway, manager *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{
		flows:   make(map[string]*checkout.Flow),
		store:   store,
		gateway: gateway,
		manager: manager,
	}
}

// GetState reports the caller's current checkout step.
func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	sessionID := resolveCartSession(c)

	h.mu.Lock()
	flow := h.flows[sessionID]
	h.mu.Unlock()

	if flow == nil {
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"step": "none"}})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"step": flow.Step().String()}})
}

// SubmitShipping opens (or resumes) the flow for this session and
// records the validated shipping details. An empty cart cannot enter
// checkout.
func (h *CheckoutHandler) SubmitShipping(c *fiber.Ctx) error {
	var details checkout.ShippingDetails
	if err := c.BodyParser(&details); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	sessionID := resolveCartSession(c)
	engine := h.manager.Cart(c.Context(), sessionID)

	var userID *int
	if id, ok := middleware.GetCurrentUserID(c); ok {
		userID = &id
	}

	h.mu.Lock()
	flow, ok := h.flows[sessionID]
	if !ok {
		created, err := checkout.NewFlow(h.store, h.gateway, engine, userID)
		if err != nil {
			h.mu.Unlock()
			return mapCheckoutError(err)
		}
		flow = created
		h.flows[sessionID] = flow
	}
	h.mu.Unlock()

	if err := flow.SubmitShipping(details); err != nil {
		return mapCheckoutError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"step": flow.Step().String()}})
}

// BackToShipping steps the flow back so the customer can edit the
// shipping form.
func (h *CheckoutHandler) BackToShipping(c *fiber.Ctx) error {
	sessionID := resolveCartSession(c)

	h.mu.Lock()
	flow := h.flows[sessionID]
	h.mu.Unlock()

	if flow == nil {
		return fiber.NewError(fiber.StatusBadRequest, "no checkout in progress")
	}
	if err := flow.BackToShipping(); err != nil {
		return mapCheckoutError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"step": flow.Step().String()}})
}

type paymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=flutterwave pod"`
}

// Pay completes the checkout with the selected method. On failure the
// cart and step are untouched so the customer can simply retry.
func (h *CheckoutHandler) Pay(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	sessionID := resolveCartSession(c)

	h.mu.Lock()
	flow := h.flows[sessionID]
	h.mu.Unlock()

	if flow == nil {
		return fiber.NewError(fiber.StatusBadRequest, "no checkout in progress")
	}

	order, err := flow.Pay(c.Context(), req.PaymentMethod)
	if err != nil {
		return mapCheckoutError(err)
	}

	h.mu.Lock()
	delete(h.flows, sessionID)
	h.mu.Unlock()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

func mapCheckoutError(err error) error {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrUnknownPaymentMethod):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return validationError(fieldErrors)
	}
	return mapStorageError(err)
}
