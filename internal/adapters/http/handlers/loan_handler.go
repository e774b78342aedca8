package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"mylibrary/internal/core/domain"
	"mylibrary/internal/core/services"
	"mylibrary/internal/pkg/pagination"
	"mylibrary/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequest represents a loan creation request body.
// Pointers distinguish absent fields from zero values.
type LoanRequest struct {
	BookID   *uint `json:"bookId"`
	UserID   *uint `json:"userId"`
	LoanDays *int  `json:"loanDays"`
}

// AddLoan handles lending a book to a user
// @Summary Loan a book
// @Description Lend an available book to a user for a number of days
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body LoanRequest true "Loan request"
// @Success 200 {object} models.LoanResponse
// @Failure 400 {object} response.ApiError
// @Failure 404 {object} response.ApiError
// @Router /library/loans [post]
func (h *LoanHandler) AddLoan(c *fiber.Ctx) error {
	var req LoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := make(map[string]string)
	if req.BookID == nil {
		fields["bookId"] = "BookId is mandatory"
	}
	if req.UserID == nil {
		fields["userId"] = "UserId is mandatory"
	}
	if req.LoanDays == nil {
		fields["loanDays"] = "LoanDays is mandatory"
	} else if *req.LoanDays < 1 {
		fields["loanDays"] = "LoanDays must be positive"
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	loan, err := h.loanService.LoanBook(c.Context(), *req.BookID, *req.UserID, *req.LoanDays)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, fmt.Sprintf("Book with id %d not found", *req.BookID))
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, fmt.Sprintf("User with id %d not found", *req.UserID))
		case errors.Is(err, domain.ErrBookAlreadyLoaned):
			return response.BadRequest(c, fmt.Sprintf("Book with id %d is already loaned", *req.BookID))
		case errors.Is(err, domain.ErrDataIntegrity):
			return response.Conflict(c, "Data integrity violation")
		case errors.Is(err, domain.ErrLockWaitTimeout):
			return response.ServiceUnavailable(c, "Storage busy, please retry")
		default:
			log.Printf("❌ Loan book failed: %v", err)
			return response.InternalServerError(c, "An unexpected error occurred.")
		}
	}

	return c.JSON(loan)
}

// RefundLoan handles returning a loaned book
// @Summary Refund a loan
// @Description Close an open loan and return its book to the available pool
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.LoanResponse
// @Failure 400 {object} response.ApiError
// @Failure 404 {object} response.ApiError
// @Router /library/loans/{id}/refund [post]
func (h *LoanHandler) RefundLoan(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.RefundLoan(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, fmt.Sprintf("Loan with id %d not found", id))
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Loaned book no longer exists")
		case errors.Is(err, domain.ErrLoanAlreadyReturned):
			return response.BadRequest(c, fmt.Sprintf("Loan with id %d is already returned", id))
		case errors.Is(err, domain.ErrLockWaitTimeout):
			return response.ServiceUnavailable(c, "Storage busy, please retry")
		default:
			log.Printf("❌ Refund loan failed: %v", err)
			return response.InternalServerError(c, "An unexpected error occurred.")
		}
	}

	return c.JSON(loan)
}

// ListLoans handles listing loans
// @Summary List loans
// @Description Get a paginated list of loans
// @Tags Loans
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Items per page" default(10)
// @Success 200 {object} pagination.Result
// @Router /library/loans [get]
func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.loanService.GetAllLoans(c.Context(), params.Page, params.Size)
	if err != nil {
		log.Printf("❌ List loans failed: %v", err)
		return response.InternalServerError(c, "An unexpected error occurred.")
	}

	return c.JSON(result)
}
