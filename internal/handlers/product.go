package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
	"github.com/example/heywrld/internal/utils"
)

// ProductHandler manages product endpoints.
type ProductHandler struct {
	store storage.Storage
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(store storage.Storage) *ProductHandler {
	return &ProductHandler{store: store}
}

// ListProducts returns the catalog, paginated via page/limit query params.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.store.GetAllProducts(c.Context())
	if err != nil {
		return err
	}

	page := utils.ParsePagination(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    paginate(products, page),
		"page":    page.Page,
		"limit":   page.Limit,
		"total":   len(products),
	})
}

// FeaturedProducts returns active products flagged for promotional
// placement.
func (h *ProductHandler) FeaturedProducts(c *fiber.Ctx) error {
	products, err := h.store.GetFeaturedProducts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// RelatedProducts returns up to four active products sharing the given
// product's category.
func (h *ProductHandler) RelatedProducts(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.store.GetProduct(c.Context(), id)
	if err != nil {
		return err
	}
	if product == nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	related, err := h.store.GetRelatedProducts(c.Context(), id, product.CategoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": related})
}

// ProductsByCategory lists all products in a category.
func (h *ProductHandler) ProductsByCategory(c *fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "categoryId")
	if err != nil {
		return err
	}

	products, err := h.store.GetProductsByCategory(c.Context(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// SearchProducts runs the catalog search. An unmatched query returns an
// empty list, never an error.
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "search query is required")
	}

	products, err := h.store.SearchProducts(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": products})
}

// GetProduct loads one product by id.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.store.GetProduct(c.Context(), id)
	if err != nil {
		return err
	}
	if product == nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Description   string   `json:"description"`
	CategoryID    int      `json:"category_id" validate:"required,gt=0"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price"`
	Quantity      int      `json:"quantity" validate:"gte=0"`
	SKU           string   `json:"sku" validate:"required"`
	Images        []string `json:"images"`
	Featured      bool     `json:"featured"`
	IsActive      *bool    `json:"is_active"`
}

// CreateProduct adds a catalog entry. A discount price must undercut the
// list price.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	if req.DiscountPrice != nil && (*req.DiscountPrice <= 0 || *req.DiscountPrice >= req.Price) {
		return fiber.NewError(fiber.StatusBadRequest, "discount price must be positive and below the list price")
	}

	category, err := h.store.GetCategory(c.Context(), req.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return fiber.NewError(fiber.StatusBadRequest, "category not found")
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Quantity:      req.Quantity,
		SKU:           req.SKU,
		Images:        req.Images,
		Featured:      req.Featured,
		IsActive:      true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.store.CreateProduct(c.Context(), &product); err != nil {
		return mapStorageError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

type productPatchRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	CategoryID    *int      `json:"category_id"`
	Price         *float64  `json:"price"`
	DiscountPrice *float64  `json:"discount_price"`
	Quantity      *int      `json:"quantity"`
	SKU           *string   `json:"sku"`
	Images        *[]string `json:"images"`
	Featured      *bool     `json:"featured"`
	IsActive      *bool     `json:"is_active"`
}

// UpdateProduct merges the provided fields over the stored record.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req productPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	existing, err := h.store.GetProduct(c.Context(), id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	// Validate the discount against the price the merge would produce.
	price := existing.Price
	if req.Price != nil {
		if *req.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
		}
		price = *req.Price
	}
	if req.DiscountPrice != nil && (*req.DiscountPrice <= 0 || *req.DiscountPrice >= price) {
		return fiber.NewError(fiber.StatusBadRequest, "discount price must be positive and below the list price")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
	}

	if req.CategoryID != nil {
		category, err := h.store.GetCategory(c.Context(), *req.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fiber.NewError(fiber.StatusBadRequest, "category not found")
		}
	}

	product, err := h.store.UpdateProduct(c.Context(), id, storage.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Quantity:      req.Quantity,
		SKU:           req.SKU,
		Images:        req.Images,
		Featured:      req.Featured,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return mapStorageError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product. Historical order items keep their
// snapshot reference to the deleted id.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteProduct(c.Context(), id); err != nil {
		return mapStorageError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterProductRoutes attaches product routes. Static segments must be
// registered before the ":id" catch-all.
func (h *ProductHandler) RegisterProductRoutes(router fiber.Router, adminOnly []fiber.Handler) {
	router.Get("/", h.ListProducts)
	router.Get("/featured", h.FeaturedProducts)
	router.Get("/search", h.SearchProducts)
	router.Get("/related/:id", h.RelatedProducts)
	router.Get("/category/:categoryId", h.ProductsByCategory)
	router.Get("/:id", h.GetProduct)

	withAdmin := func(handler fiber.Handler) []fiber.Handler {
		chain := make([]fiber.Handler, 0, len(adminOnly)+1)
		chain = append(chain, adminOnly...)
		return append(chain, handler)
	}
	router.Post("/", withAdmin(h.CreateProduct)...)
	router.Patch("/:id", withAdmin(h.UpdateProduct)...)
	router.Delete("/:id", withAdmin(h.DeleteProduct)...)
}
