package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/models"
	"github.com/example/heywrld/internal/storage"
	"github.com/example/heywrld/internal/utils"
)

// CatalogHandler manages category endpoints.
type CatalogHandler struct {
	store storage.Storage
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(store storage.Storage) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// ListCategories returns every category, active or not; the storefront
// filters client-side, the back office needs all of them.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.GetAllCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// GetCategory loads one category by id.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.store.GetCategory(c.Context(), id)
	if err != nil {
		return err
	}
	if category == nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

// GetCategoryBySlug resolves the URL-safe identifier used by category
// routes.
func (h *CatalogHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid slug")
	}

	category, err := h.store.GetCategoryBySlug(c.Context(), slug)
	if err != nil {
		return err
	}
	if category == nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

// CreateCategory adds a category. The slug is derived from the name when
// omitted.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	if req.Slug == "" {
		req.Slug = utils.GenerateSlug(req.Name)
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.store.CreateCategory(c.Context(), &category); err != nil {
		return mapStorageError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": category})
}

type categoryPatchRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategory merges the provided fields over the stored record.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req categoryPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.store.UpdateCategory(c.Context(), id, storage.CategoryPatch{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return mapStorageError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category. Storage rejects the delete while
// products still reference it.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteCategory(c.Context(), id); err != nil {
		return mapStorageError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
