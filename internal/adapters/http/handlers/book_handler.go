package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"mylibrary/internal/core/domain"
	"mylibrary/internal/core/services"
	"mylibrary/internal/pkg/pagination"
	"mylibrary/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// GetBook handles getting a book by ID
// @Summary Get book by ID
// @Description Get a specific book by ID
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} models.BookResponse
// @Failure 404 {object} response.ApiError
// @Router /library/books/{id} [get]
func (h *BookHandler) GetBook(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetBookByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, fmt.Sprintf("Book with id %d not found", id))
		}
		log.Printf("❌ Get book failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(book)
}

// AddBook handles creating a book
// @Summary Add a book
// @Description Create a new book in the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param body body services.AddBookInput true "Book data"
// @Success 200 {object} models.BookResponse
// @Failure 400 {object} response.ValidationError
// @Failure 409 {object} response.ApiError
// @Router /library/books [post]
func (h *BookHandler) AddBook(c *fiber.Ctx) error {
	var input services.AddBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate before the service is invoked
	fields := make(map[string]string)
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "Title is mandatory"
	}
	if strings.TrimSpace(input.Author) == "" {
		fields["author"] = "Author is mandatory"
	}
	if strings.TrimSpace(input.ISBN) == "" {
		fields["isbn"] = "ISBN is mandatory"
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	book, err := h.bookService.AddBook(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			return response.Conflict(c, "Data integrity violation")
		}
		log.Printf("❌ Add book failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(book)
}

// DeleteBook handles deleting a book by ID (idempotent)
// @Summary Delete a book
// @Description Delete a book by ID; deleting an unknown ID still succeeds
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200
// @Failure 400 {object} response.ApiError
// @Router /library/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.DeleteBookByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrDataIntegrity) {
			return response.Conflict(c, "Data integrity violation")
		}
		log.Printf("❌ Delete book failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.SendStatus(fiber.StatusOK)
}

// ListBooks handles listing books
// @Summary List books
// @Description Get a paginated list of books
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} pagination.Result
// @Router /library/books [get]
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.bookService.GetAllBooks(c.Context(), params.Page, params.Size)
	if err != nil {
		log.Printf("❌ List books failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(result)
}
