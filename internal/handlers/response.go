package handlers

import "github.com/gofiber/fiber/v2"

// Envelope is the JSON wrapper used by every API response.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

const (
	msgNotFound    = "Product not found"
	msgServerError = "Server Error"
	msgInvalidBody = "Invalid request body"
)

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

func respondMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: status < fiber.StatusBadRequest, Message: message})
}
