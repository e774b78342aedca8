package services

import (
	"context"
	"log"
	"time"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/adapters/persistence/repositories"
	"mylibrary/internal/core/domain"
	"mylibrary/internal/pkg/pagination"
)

// LoanService owns the loan lifecycle: it coordinates book-lock acquisition,
// the availability check and the loan/return transitions.
type LoanService interface {
	LoanBook(ctx context.Context, bookID, userID uint, loanDays int) (*models.LoanResponse, error)
	RefundLoan(ctx context.Context, loanID uint) (*models.LoanResponse, error)
	GetAllLoans(ctx context.Context, page, size int) (*pagination.Result, error)
}

// DefaultLoanService is the store-backed LoanService. Correctness of the
// lend/return flow rests on two rules:
//
//  1. Every mutation of a book's availability happens inside one TxManager
//     transaction, after taking the exclusive row lock on that book via
//     GetByIDForUpdate. Concurrent requests for the same book queue on the
//     lock; requests for different books run in parallel.
//  2. The availability check reads through to the store under that lock,
//     never through any cache.
type DefaultLoanService struct {
	loanStore repositories.LoanStore
	bookStore repositories.BookStore
	userStore repositories.UserStore
	tx        repositories.TxManager
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanStore repositories.LoanStore,
	bookStore repositories.BookStore,
	userStore repositories.UserStore,
	tx repositories.TxManager,
) *DefaultLoanService {
	return &DefaultLoanService{
		loanStore: loanStore,
		bookStore: bookStore,
		userStore: userStore,
		tx:        tx,
	}
}

// LoanBook lends the book to the user for loanDays days. Exactly one loan row
// is created and exactly one book flag is flipped per successful call; on any
// failure after the lock the transaction rolls back with no state change.
func (s *DefaultLoanService) LoanBook(ctx context.Context, bookID, userID uint, loanDays int) (*models.LoanResponse, error) {
	var loan *models.Loan

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		// 1. Lock the book row for the duration of the transaction.
		// The check in step 2 is safe only because of this lock.
		book, err := s.bookStore.GetByIDForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		// 2. Availability check, serialized per book by the row lock
		if book.IsLoaned {
			return domain.ErrBookAlreadyLoaned
		}

		// 3. The user row is not mutated, no lock needed
		user, err := s.userStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		// 4. Create the loan and reserve the book, atomically with the commit
		now := time.Now()
		loan = &models.Loan{
			BookID:   book.ID,
			UserID:   user.ID,
			LoanDate: now,
			DueDate:  now.AddDate(0, 0, loanDays),
		}
		if err := s.loanStore.Create(ctx, loan); err != nil {
			return err
		}

		book.IsLoaned = true
		if err := s.bookStore.Update(ctx, book); err != nil {
			return err
		}

		loan.Book = *book
		loan.User = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Book with id %d has been loaned", bookID)
	return loan.ToResponse(), nil
}

// RefundLoan closes the loan and returns its book to the available pool.
// A loan transitions from open to closed exactly once; refunding an already
// returned loan fails with ErrLoanAlreadyReturned.
func (s *DefaultLoanService) RefundLoan(ctx context.Context, loanID uint) (*models.LoanResponse, error) {
	var loan *models.Loan

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		// 1. Lock the loan row. The locking read sees the latest committed
		// return state rather than the transaction snapshot, so concurrent
		// refunds of this loan queue here and the check in step 2 is safe.
		var err error
		loan, err = s.loanStore.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}

		// 2. Closed-once check, serialized by the loan row lock
		if loan.IsReturned() {
			return domain.ErrLoanAlreadyReturned
		}

		// 3. Same lock primitive as LoanBook, so loan/refund attempts on
		// this book are totally ordered by the row-lock queue. Lock order
		// is loan then book everywhere a refund runs.
		book, err := s.bookStore.GetByIDForUpdate(ctx, loan.BookID)
		if err != nil {
			return err
		}

		// 4. Close the loan and free the book, atomically with the commit
		now := time.Now()
		loan.ReturnDate = &now
		if err := s.loanStore.Update(ctx, loan); err != nil {
			return err
		}

		book.IsLoaned = false
		if err := s.bookStore.Update(ctx, book); err != nil {
			return err
		}

		loan.Book = *book
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Book with id %d has been refunded", loan.BookID)
	return loan.ToResponse(), nil
}

// GetAllLoans returns a page of loans
func (s *DefaultLoanService) GetAllLoans(ctx context.Context, page, size int) (*pagination.Result, error) {
	params := pagination.New(page, size)

	loans, total, err := s.loanStore.List(ctx, params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LoanResponse, len(loans))
	for i, loan := range loans {
		items[i] = loan.ToResponse()
	}

	return pagination.NewResult(items, total, params.Page, params.Size), nil
}
