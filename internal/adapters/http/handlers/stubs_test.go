package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/services"
	"mylibrary/internal/pkg/pagination"
)

// Function-backed service stubs so each test controls exactly one path.

type stubBookService struct {
	getFn    func(ctx context.Context, id uint) (*models.BookResponse, error)
	addFn    func(ctx context.Context, input *services.AddBookInput) (*models.BookResponse, error)
	deleteFn func(ctx context.Context, id uint) error
	listFn   func(ctx context.Context, page, size int) (*pagination.Result, error)
}

func (s *stubBookService) GetBookByID(ctx context.Context, id uint) (*models.BookResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) AddBook(ctx context.Context, input *services.AddBookInput) (*models.BookResponse, error) {
	return s.addFn(ctx, input)
}

func (s *stubBookService) DeleteBookByID(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubBookService) GetAllBooks(ctx context.Context, page, size int) (*pagination.Result, error) {
	return s.listFn(ctx, page, size)
}

type stubLoanService struct {
	loanFn   func(ctx context.Context, bookID, userID uint, loanDays int) (*models.LoanResponse, error)
	refundFn func(ctx context.Context, loanID uint) (*models.LoanResponse, error)
	listFn   func(ctx context.Context, page, size int) (*pagination.Result, error)
}

func (s *stubLoanService) LoanBook(ctx context.Context, bookID, userID uint, loanDays int) (*models.LoanResponse, error) {
	return s.loanFn(ctx, bookID, userID, loanDays)
}

func (s *stubLoanService) RefundLoan(ctx context.Context, loanID uint) (*models.LoanResponse, error) {
	return s.refundFn(ctx, loanID)
}

func (s *stubLoanService) GetAllLoans(ctx context.Context, page, size int) (*pagination.Result, error) {
	return s.listFn(ctx, page, size)
}

func decodeBody(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
