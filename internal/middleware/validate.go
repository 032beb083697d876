package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/ainews/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ParseAndValidate parses the request body into dst and validates its
// struct tags. On failure it writes the error response and returns
// false; the caller should stop handling.
func ParseAndValidate(c *fiber.Ctx, dst interface{}) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"fields":  fields,
		})
		return false
	}
	return true
}

// NewErrorHandler builds the app-wide fiber error handler. Internal
// error details are only exposed outside production.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		logger.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")

		message := http.StatusText(code)
		if !production && err != nil {
			message = err.Error()
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
		})
	}
}
