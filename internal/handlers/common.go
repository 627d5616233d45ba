package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/heywrld/internal/storage"
	"github.com/example/heywrld/internal/utils"
)

var validate = validator.New()

// mapStorageError converts the storage error taxonomy into HTTP errors:
// missing targets become 404s, uniqueness and referential conflicts 409s.
func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrDuplicate), errors.Is(err, storage.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// paginate slices a full result set down to the requested page.
func paginate[T any](items []T, p utils.Pagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return fiber.NewError(fiber.StatusBadRequest, "validation failed on field "+fe.Field())
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
