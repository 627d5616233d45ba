package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/middleware"
	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
	"github.com/example/heywrld/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	store storage.Storage
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(store storage.Storage) *OrderHandler {
	return &OrderHandler{store: store}
}

// ListOrders returns orders newest-first, paginated. Admin only.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.store.GetAllOrders(c.Context())
	if err != nil {
		return err
	}

	page := utils.ParsePagination(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    paginate(orders, page),
		"page":    page.Page,
		"limit":   page.Limit,
		"total":   len(orders),
	})
}

// GetOrder returns a single order together with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.store.GetOrder(c.Context(), id)
	if err != nil {
		return err
	}
	if order == nil {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	items, err := h.store.GetOrderItems(c.Context(), id)
	if err != nil {
		return err
	}
	order.Items = items

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type orderItemRequest struct {
	ProductID int     `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type createOrderRequest struct {
	Status          string             `json:"status"`
	Total           float64            `json:"total" validate:"gte=0"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	PaymentStatus   string             `json:"payment_status" validate:"omitempty,oneof=pending paid"`
	ShippingAddress string             `json:"shipping_address"`
	ShippingCity    string             `json:"shipping_city"`
	ShippingState   string             `json:"shipping_state"`
	ShippingZipCode string             `json:"shipping_zip_code"`
	ShippingCountry string             `json:"shipping_country"`
	ShippingMethod  string             `json:"shipping_method"`
	Notes           string             `json:"notes"`
	Items           []orderItemRequest `json:"items" validate:"dive"`
}

// CreateOrder accepts a pre-assembled order payload (the §6 wire shape:
// order fields plus an items array) and persists everything atomically.
// The interactive storefront goes through the checkout flow instead; this
// endpoint serves API clients and the back office. Guest orders carry no
// user id.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	order := models.Order{
		Status:          req.Status,
		Total:           req.Total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   req.PaymentStatus,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZipCode: req.ShippingZipCode,
		ShippingCountry: req.ShippingCountry,
		ShippingMethod:  req.ShippingMethod,
		Notes:           req.Notes,
	}
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		order.UserID = &userID
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := h.store.CreateOrder(c.Context(), &order, items); err != nil {
		return mapStorageError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

type orderPatchRequest struct {
	Status         *string `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus  *string `json:"payment_status" validate:"omitempty,oneof=pending paid"`
	TrackingNumber *string `json:"tracking_number"`
	ShippingMethod *string `json:"shipping_method"`
	Notes          *string `json:"notes"`
}

// UpdateOrder applies admin mutations: status, payment status, tracking
// and notes. Orders are never hard-deleted.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req orderPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	order, err := h.store.UpdateOrder(c.Context(), id, storage.OrderPatch{
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		TrackingNumber: req.TrackingNumber,
		ShippingMethod: req.ShippingMethod,
		Notes:          req.Notes,
	})
	if err != nil {
		return mapStorageError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}
