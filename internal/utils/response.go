package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the common error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the common acknowledgement body for writes that return
// no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendMessage sends an acknowledgement JSON response.
func SendMessage(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(MessageResponse{Message: message})
}
