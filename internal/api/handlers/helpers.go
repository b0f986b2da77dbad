package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autopost/internal/platform"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

func GetUserID(c *fiber.Ctx) int64 {
	raw, _ := c.Locals("user_id").(string)
	userID, _ := strconv.ParseInt(raw, 10, 64)
	return userID
}

// ErrorMap gives the HTTP status for each known error. Wrapped errors are
// matched with errors.Is.
var ErrorMap = map[error]int{
	service.ErrInvalidInput:           fiber.StatusBadRequest,
	platform.ErrImageRequired:         fiber.StatusBadRequest,
	service.ErrForbidden:              fiber.StatusForbidden,
	service.ErrNotFound:               fiber.StatusNotFound,
	service.ErrDuplicateAccount:       fiber.StatusConflict,
	service.ErrDuplicateMember:        fiber.StatusConflict,
	repository.ErrDatabaseUnavailable: fiber.StatusServiceUnavailable,
	service.ErrGeneration:             fiber.StatusBadGateway,
}

func StatusFor(err error) int {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code
		}
	}
	return fiber.StatusInternalServerError
}

func HandleError(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	if code == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		return c.Status(code).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// bind parses the JSON body into dto and validates it. On failure the 400
// response has already been written and ok is false.
func bind(c *fiber.Ctx, dto any) (ok bool, err error) {
	if err := c.BodyParser(dto); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := transfer.ValidateDTO(dto); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return true, nil
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid id",
	})
}
