package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
)

// AdminHandler serves the back-office dashboard aggregates.
type AdminHandler struct {
	store storage.Storage
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(store storage.Storage) *AdminHandler {
	return &AdminHandler{store: store}
}

// Dashboard returns the headline numbers: revenue, order/product/user
// counts, the ten most recent orders and the low-stock products worth
// restocking.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	orders, err := h.store.GetAllOrders(c.Context())
	if err != nil {
		return err
	}
	products, err := h.store.GetAllProducts(c.Context())
	if err != nil {
		return err
	}
	users, err := h.store.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	var revenue float64
	for _, order := range orders {
		revenue += order.Total
	}

	// Orders arrive newest-first from storage.
	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_revenue":    revenue,
			"total_orders":     len(orders),
			"total_products":   len(products),
			"total_users":      len(users),
			"recent_orders":    recent,
			"popular_products": popularProducts(products),
		},
	})
}

// popularProducts picks the five active products to spotlight: featured
// entries first, then the lowest remaining stock as a proxy for sales.
func popularProducts(products []models.Product) []models.Product {
	active := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive {
			active = append(active, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Featured != active[j].Featured {
			return active[i].Featured
		}
		return active[i].Quantity < active[j].Quantity
	})

	if len(active) > 5 {
		active = active[:5]
	}
	return active
}
