package response

import "github.com/gofiber/fiber/v2"

// ApiError is the error envelope returned by every failing endpoint
type ApiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationError is the envelope for request validation failures,
// carrying one message per offending field
type ValidationError struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Error sends an error response with the standard envelope
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ApiError{
		Status:  statusCode,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// ServiceUnavailable sends a 503 response for retryable failures
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusServiceUnavailable, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationFailed sends a 400 response with field-level error messages
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ValidationError{
		Status:  fiber.StatusBadRequest,
		Message: "Validation failed",
		Errors:  fields,
	})
}
