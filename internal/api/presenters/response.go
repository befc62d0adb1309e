package presenters

import (
	"Foodgram-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse renders a failure. A ValidationError keeps its field map so
// the client gets a field-scoped report rather than one opaque message.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(Response{
			Status:  false,
			Message: message,
			Error:   verr.Fields,
		})
	}

	var detail any
	if err != nil {
		detail = err.Error()
	}
	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}
