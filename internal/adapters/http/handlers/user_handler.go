package handlers

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"mylibrary/internal/core/domain"
	"mylibrary/internal/core/services"
	"mylibrary/internal/pkg/pagination"
	"mylibrary/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserHandler handles borrower endpoints
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Description Get a specific user by ID
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} response.ApiError
// @Router /library/users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, fmt.Sprintf("User with id %d not found", id))
		}
		log.Printf("❌ Get user failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(user)
}

// AddUser handles creating a user
// @Summary Add a user
// @Description Register a new borrower
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.AddUserInput true "User data"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} response.ValidationError
// @Failure 409 {object} response.ApiError
// @Router /library/users [post]
func (h *UserHandler) AddUser(c *fiber.Ctx) error {
	var input services.AddUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := make(map[string]string)
	if strings.TrimSpace(input.FirstName) == "" {
		fields["firstName"] = "FirstName is mandatory"
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["lastName"] = "LastName is mandatory"
	}
	if input.Email != "" && !emailPattern.MatchString(input.Email) {
		fields["email"] = "Email should be valid"
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	user, err := h.userService.AddUser(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			return response.Conflict(c, "Data integrity violation")
		}
		log.Printf("❌ Add user failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(user)
}

// DeleteUser handles deleting a user by ID (idempotent)
// @Summary Delete a user
// @Description Delete a user by ID; deleting an unknown ID still succeeds
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200
// @Failure 400 {object} response.ApiError
// @Router /library/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.DeleteUserByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			return response.Conflict(c, "Data integrity violation")
		}
		log.Printf("❌ Delete user failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.SendStatus(fiber.StatusOK)
}

// ListUsers handles listing users
// @Summary List users
// @Description Get a paginated list of users
// @Tags Users
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} pagination.Result
// @Router /library/users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.GetAllUsers(c.Context(), params.Page, params.Size)
	if err != nil {
		log.Printf("❌ List users failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(result)
}
