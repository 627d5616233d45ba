package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/middleware"
	"github.com/example/heywrld/internal/storage"
)

// ProfileHandler lets authenticated customers read and edit their
// account details.
type ProfileHandler struct {
	store storage.Storage
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(store storage.Storage) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// GetProfile returns the authenticated user's account.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.store.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

type profilePatchRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	ZipCode  *string `json:"zip_code"`
	Country  *string `json:"country"`
}

// UpdateProfile merges the provided fields over the stored account.
// Usernames are immutable and passwords change through their own flow.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req profilePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := h.store.UpdateUser(c.Context(), userID, storage.UserPatch{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		ZipCode:  req.ZipCode,
		Country:  req.Country,
	})
	if err != nil {
		return mapStorageError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}
